package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// cart_slots テーブルに保存する SlotStore
type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) Read(ctx context.Context, key string) ([]byte, error) {
	var slot model.CartSlot
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return slot.Payload, nil
}

// 同じキーは上書き（upsert）
func (r *SlotGormRepository) Write(ctx context.Context, key string, value []byte) error {
	slot := model.CartSlot{Key: key, Payload: value, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Scopes(slotUpsert).Create(&slot).Error
}

func slotUpsert(q *gorm.DB) *gorm.DB {
	return q.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	})
}

func (r *SlotGormRepository) Remove(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.CartSlot{}).Error
}

var _ repo.SlotStore = (*SlotGormRepository)(nil)
