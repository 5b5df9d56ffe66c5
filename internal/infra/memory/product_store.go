package memory

import (
	"context"
	"slices"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[string]model.Product
}

func NewProductStore(seed ...model.Product) *ProductStore {
	s := &ProductStore{products: map[string]model.Product{}}
	for _, p := range seed {
		s.products[p.ID] = p
	}
	return s
}

// 新しい順（同時刻はID順）
func (s *ProductStore) List(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sortNewest(out)
	return out, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *ProductStore) ListBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Product{}
	for _, p := range s.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	sortNewest(out)
	return out, nil
}

func (s *ProductStore) Create(ctx context.Context, p model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[p.ID] = p
	return p, nil
}

func (s *ProductStore) Update(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	s.products[p.ID] = p
	return nil
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func sortNewest(ps []model.Product) {
	slices.SortFunc(ps, func(a, b model.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}

var _ repo.ProductRepository = (*ProductStore)(nil)
