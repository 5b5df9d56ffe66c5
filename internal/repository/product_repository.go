package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
// 絞り込み・並び替えは catalogquery 側で行う。
type ProductRepository interface {
	// 全件（作成日時の新しい順）
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Count(ctx context.Context) (int64, error)
}
