package memory

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

type txRepos struct {
	users    *UserStore
	products *ProductStore
	audit    *AuditLogStore
}

func (r *txRepos) Users() repo.UserRepository         { return r.users }
func (r *txRepos) Products() repo.ProductRepository   { return r.products }
func (r *txRepos) AuditLogs() repo.AuditLogRepository { return r.audit }

// TxManager は WithinTx を直列化するだけ（ロールバックはしない）。
type TxManager struct {
	mu    sync.Mutex
	repos *txRepos
}

func NewTxManager(users *UserStore, products *ProductStore, audit *AuditLogStore) *TxManager {
	return &TxManager{repos: &txRepos{users: users, products: products, audit: audit}}
}

func (tm *TxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return fn(tm.repos)
}

var _ repo.TransactionManager = (*TxManager)(nil)
