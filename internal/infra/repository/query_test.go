package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// SQLを組み立てるだけのDB（接続はしない）
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=storefront dbname=storefront sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestSlotUpsert_OnConflictKey(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(slotUpsert).Create(&model.CartSlot{
			Key:       "cart:s1",
			Payload:   []byte("[]"),
			UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		})
	})

	assert.Contains(t, sql, `INSERT INTO "cart_slots"`)
	assert.Contains(t, sql, `ON CONFLICT ("key") DO UPDATE SET "payload"="excluded"."payload","updated_at"="excluded"."updated_at"`)
}

func TestAuditLogWhere_Filters(t *testing.T) {
	db := newDryRunDB(t)
	actor := "admin-1"
	rt := model.AuditResourceUser
	f := repo.AuditLogFilter{
		ActorUserID:  &actor,
		Actions:      []model.AuditAction{model.AuditActionBanUser, model.AuditActionDeleteUser},
		ResourceType: &rt,
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&model.AuditLog{}).Scopes(auditLogWhere(f)).Find(&[]model.AuditLog{})
	})

	assert.Contains(t, sql, `FROM "audit_logs"`)
	assert.Contains(t, sql, "actor_user_id = 'admin-1'")
	assert.Contains(t, sql, "action IN ('BAN_USER','DELETE_USER')")
	assert.Contains(t, sql, "resource_type = 'user'")
	assert.NotContains(t, sql, "resource_id")
	assert.NotContains(t, sql, "created_at >=")
}

func TestAuditLogWhere_EmptyFilterHasNoWhere(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&model.AuditLog{}).Scopes(auditLogWhere(repo.AuditLogFilter{})).Find(&[]model.AuditLog{})
	})

	assert.NotContains(t, sql, "WHERE")
}
