package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/infra/seed"
	repo "storefront/internal/repository"
)

func TestSlotStore_ReadWriteRemove(t *testing.T) {
	s := memory.NewSlotStore()
	ctx := context.Background()

	_, err := s.Read(ctx, "cart:a")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	payload := []byte(`[]`)
	require.NoError(t, s.Write(ctx, "cart:a", payload))
	payload[0] = 'x'

	got, err := s.Read(ctx, "cart:a")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Remove(ctx, "cart:a"))
	require.NoError(t, s.Remove(ctx, "cart:a"))
	_, err = s.Read(ctx, "cart:a")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUserStore(t *testing.T) {
	s := memory.NewUserStore(seed.Users("hash")...)
	ctx := context.Background()

	err := s.Create(ctx, &model.User{ID: "dup", Email: "BUYER@example.com"})
	assert.ErrorIs(t, err, repo.ErrEmailTaken)

	u, err := s.FindByEmail(ctx, "Seller@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)

	//返した値を書き換えても保存値は変わらない
	u.Name = "changed"
	again, err := s.FindByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "John Seller", again.Name)

	sellers, err := s.ListByRole(ctx, model.RoleSeller)
	require.NoError(t, err)
	ids := []string{}
	for _, s := range sellers {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"user-1", "user-3", "user-4"}, ids)

	require.NoError(t, s.IncrementTokenVersion(ctx, "user-1"))
	again, err = s.FindByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.TokenVersion)

	assert.ErrorIs(t, s.Update(ctx, &model.User{ID: "ghost"}), repo.ErrUserNotFound)
	assert.ErrorIs(t, s.IncrementTokenVersion(ctx, "ghost"), repo.ErrUserNotFound)
}

func TestProductStore(t *testing.T) {
	s := memory.NewProductStore(seed.Products()...)
	ctx := context.Background()

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 10)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "not newest first at %d", i)
	}

	mine, err := s.ListBySeller(ctx, "user-3")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "product-7", mine[0].ID)

	_, err = s.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, model.Product{ID: "nope"}), repo.ErrNotFound)

	_, err = s.Create(ctx, model.Product{ID: "product-new", CreatedAt: time.Now()})
	require.NoError(t, err)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
}

func TestAuditLogStore_FilterAndPaging(t *testing.T) {
	s := memory.NewAuditLogStore()
	ctx := context.Background()

	for _, a := range []model.AuditAction{model.AuditActionBanUser, model.AuditActionCreateProduct, model.AuditActionBanUser} {
		require.NoError(t, s.Create(ctx, model.AuditLog{ActorUserID: "admin-1", Action: a}))
	}

	all, err := s.List(ctx, repo.AuditLogFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[2].ID)

	bans, err := s.List(ctx, repo.AuditLogFilter{Actions: []model.AuditAction{model.AuditActionBanUser}, Limit: 10, Offset: 1})
	require.NoError(t, err)
	require.Len(t, bans, 1)
	assert.Equal(t, all[2].ID, bans[0].ID)

	mixed, err := s.List(ctx, repo.AuditLogFilter{Actions: []model.AuditAction{model.AuditActionCreateProduct, model.AuditActionBanUser}, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, mixed, 2)
}

func TestAuditLogFilter_Page(t *testing.T) {
	limit, offset := repo.AuditLogFilter{}.Page()
	assert.Equal(t, repo.DefaultAuditLogLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset = repo.AuditLogFilter{Limit: 500, Offset: -3}.Page()
	assert.Equal(t, repo.DefaultAuditLogLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset = repo.AuditLogFilter{Limit: 20, Offset: 40}.Page()
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)
}

func TestTxManager_PropagatesError(t *testing.T) {
	users := memory.NewUserStore()
	tm := memory.NewTxManager(users, memory.NewProductStore(), memory.NewAuditLogStore())
	boom := errors.New("boom")

	err := tm.WithinTx(context.Background(), func(r repo.TxRepos) error {
		require.NotNil(t, r.Users())
		require.NotNil(t, r.Products())
		require.NotNil(t, r.AuditLogs())
		return boom
	})

	assert.ErrorIs(t, err, boom)
}
