package cartengine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"storefront/internal/repository"
)

// Registry はセッションごとの Engine を保持する。
// 追い出された Engine は次回スロットから復元される。
type Registry struct {
	mu      sync.Mutex
	engines *lru.Cache[string, *Engine]
	store   repository.SlotStore
	log     *slog.Logger
}

func NewRegistry(size int, store repository.SlotStore, log *slog.Logger) (*Registry, error) {
	cache, err := lru.New[string, *Engine](size)
	if err != nil {
		return nil, fmt.Errorf("cart registry: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Registry{engines: cache, store: store, log: log}, nil
}

// Get はセッションの Engine を返す（無ければスロットから開く）。
// 開けなかったときは何もキャッシュせずエラーを返す。次の Get で読み直す。
func (r *Registry) Get(ctx context.Context, sessionID string) (*Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines.Get(sessionID); ok {
		return e, nil
	}
	e, err := Open(ctx, r.store, SlotKey(sessionID), r.log)
	if err != nil {
		return nil, err
	}
	r.engines.Add(sessionID, e)
	return e, nil
}

// 保持中の Engine 数
func (r *Registry) Len() int {
	return r.engines.Len()
}
