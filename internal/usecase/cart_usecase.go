package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/cartengine"
	"storefront/internal/checkout"
	"storefront/internal/domain/model"
)

// 公開カタログから商品を引く約束（ProductUsecase が実装）
type ProductCatalog interface {
	PublicProduct(ctx context.Context, productID string) (model.Product, error)
}

// CartUsecase は /cart の業務ロジックです。
// 在庫の上限チェックはここで行い、cartengine 自体は数量を制限しない。
type CartUsecase struct {
	carts   *cartengine.Registry
	catalog ProductCatalog
	log     *slog.Logger
}

func NewCartUsecase(carts *cartengine.Registry, catalog ProductCatalog, log *slog.Logger) *CartUsecase {
	return &CartUsecase{
		carts:   carts,
		catalog: catalog,
		log:     log,
	}
}

// CartResponse は items / total_items / subtotal / tax / total。
type CartResponse = checkout.Summary

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はセッションのカートを返す（無ければ空）。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	cart, err := openCart(ctx, u.carts, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	return checkout.Summarize(cart.Items()), nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.catalog.PublicProduct(ctx, in.ProductID)
	if err != nil {
		return CartResponse{}, err
	}

	cart, err := openCart(ctx, u.carts, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	// スナップショットは追加時点の商品。在庫の判定と追加はまとめて行う
	s, err := cart.AddWithinLimit(ctx, p, in.Quantity, p.Stock)
	if errors.Is(err, cartengine.ErrLimitExceeded) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}
	if err != nil {
		return CartResponse{}, err
	}
	return checkout.Summarize(s.Items), nil
}

// 数量変更。0以下は行の削除。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, sessionID string, productID string, in UpdateCartItemInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := openCart(ctx, u.carts, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	if cart.Quantity(productID) == 0 {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if in.Quantity > 0 {
		// 在庫は最新の商品で確認する
		p, err := u.catalog.PublicProduct(ctx, productID)
		if err != nil {
			return CartResponse{}, err
		}
		if in.Quantity > p.Stock {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
		}
	}

	s := cart.UpdateQuantity(ctx, productID, in.Quantity)
	return checkout.Summarize(s.Items), nil
}

// 行の削除（無い商品でもそのまま返す）
func (u *CartUsecase) DeleteCartItem(ctx context.Context, sessionID string, productID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}

	cart, err := openCart(ctx, u.carts, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	s := cart.RemoveFromCart(ctx, productID)
	return checkout.Summarize(s.Items), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}

	cart, err := openCart(ctx, u.carts, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	s := cart.ClearCart(ctx)
	u.log.InfoContext(ctx, "cart cleared", slog.String("session", sessionID))
	return checkout.Summarize(s.Items), nil
}

// 保存先が読めないときは 503（空カートとして扱うと保存内容を上書きしてしまう）
func openCart(ctx context.Context, carts *cartengine.Registry, sessionID string) (*cartengine.Engine, error) {
	cart, err := carts.Get(ctx, sessionID)
	if errors.Is(err, cartengine.ErrSlotUnavailable) {
		return nil, NewHTTPError(http.StatusServiceUnavailable, "cart unavailable")
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}
