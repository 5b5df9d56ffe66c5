package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"storefront/internal/catalogquery"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
	// 画面遷移で返す場合の遷移先（/login, /, /cart）
	Redirect string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 拒否ではなく遷移として返すエラー
func NewRedirectError(status int, message string, target string) error {
	return &HTTPError{
		Status:   status,
		Message:  message,
		Redirect: target,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 関連商品の最大件数
const relatedLimit = 4

type ProductUsecase struct {
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	log         *slog.Logger
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, userRepo repo.UserRepository, log *slog.Logger) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
	// 初期値を省いた共有用のクエリ
	Query string `json:"query"`
}

type ProductDetailOutput struct {
	Product model.Product   `json:"product"`
	Related []model.Product `json:"related"`
}

// GET /products
func (u *ProductUsecase) ListPublicProducts(ctx context.Context, values url.Values) (ProductListOutput, error) {
	params, err := catalogquery.Parse(values)
	if errors.Is(err, catalogquery.ErrInvalidSort) {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid price range")
	}

	products, err := u.publicProducts(ctx)
	if err != nil {
		return ProductListOutput{}, err
	}

	items := catalogquery.Apply(products, params)
	return ProductListOutput{
		Items: items,
		Total: len(items),
		Query: params.QueryString(),
	}, nil
}

// GET /products/:id
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (ProductDetailOutput, error) {
	p, err := u.PublicProduct(ctx, productID)
	if err != nil {
		return ProductDetailOutput{}, err
	}

	products, err := u.publicProducts(ctx)
	if err != nil {
		return ProductDetailOutput{}, err
	}

	return ProductDetailOutput{
		Product: p,
		Related: catalogquery.Related(products, p, relatedLimit),
	}, nil
}

// PublicProduct は公開中の商品を1件返す。非公開・未承認出品者は not found。
func (u *ProductUsecase) PublicProduct(ctx context.Context, productID string) (model.Product, error) {
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "find product failed", slog.String("product_id", productID), slog.Any("err", err))
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsPublished() {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	seller, err := u.userRepo.FindByID(ctx, p.SellerID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "find seller failed", slog.String("seller_id", p.SellerID), slog.Any("err", err))
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !seller.IsApprovedSeller() {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

// GET /categories
func (u *ProductUsecase) Categories() []string {
	out := make([]string, len(model.Categories))
	copy(out, model.Categories)
	return out
}

// 公開中かつ承認済み出品者の商品（新しい順）
func (u *ProductUsecase) publicProducts(ctx context.Context) ([]model.Product, error) {
	sellers, err := u.userRepo.ListByRole(ctx, model.RoleSeller)
	if err != nil {
		u.log.ErrorContext(ctx, "list sellers failed", slog.Any("err", err))
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	approved := make(map[string]struct{}, len(sellers))
	for _, s := range sellers {
		if s.IsApprovedSeller() {
			approved[s.ID] = struct{}{}
		}
	}

	all, err := u.productRepo.List(ctx)
	if err != nil {
		u.log.ErrorContext(ctx, "list products failed", slog.Any("err", err))
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if _, ok := approved[p.SellerID]; ok && p.IsPublished() {
			out = append(out, p)
		}
	}
	return out, nil
}
