package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 審査状態ごとのバナー
type SellerBanner struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

var sellerBanners = map[model.SellerStatus]SellerBanner{
	model.SellerStatusPending: {
		Title:   "Account Pending Approval",
		Message: "Your seller account is currently under review. You can add products, but they won't be visible to buyers until your account is approved.",
	},
	model.SellerStatusRejected: {
		Title:   "Account Rejected",
		Message: "Your seller account application has been rejected. Please contact support for more information.",
	},
	model.SellerStatusApproved: {
		Title:   "Account Approved",
		Message: "Your seller account is active. You can list products and they will be visible to buyers.",
	},
}

type SellerStats struct {
	ProductCount   int             `json:"product_count"`
	PublishedCount int             `json:"published_count"`
	TotalStock     int64           `json:"total_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

type SellerDashboardOutput struct {
	SellerStatus   model.SellerStatus `json:"seller_status"`
	Banner         SellerBanner       `json:"banner"`
	CanAddProducts bool               `json:"can_add_products"`
	Products       []model.Product    `json:"products"`
	Stats          SellerStats        `json:"stats"`
}

// 商品登録・編集の入力
type ProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Stock       int64
	Status      model.ProductStatus
}

// SellerUsecase は出品者の画面（自分の商品だけ扱う）。
type SellerUsecase struct {
	tx        repo.TransactionManager
	products  repo.ProductRepository
	validator ProductValidator
	idGen     IDGenerator
	clock     Clock
	log       *slog.Logger
}

func NewSellerUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	validator ProductValidator,
	idGen IDGenerator,
	clock Clock,
	log *slog.Logger,
) *SellerUsecase {
	return &SellerUsecase{
		tx:        tx,
		products:  products,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
		log:       log,
	}
}

// GET /seller
func (u *SellerUsecase) Dashboard(ctx context.Context, seller *model.User) (SellerDashboardOutput, error) {
	items, err := u.products.ListBySeller(ctx, seller.ID)
	if err != nil {
		u.log.ErrorContext(ctx, "list seller products failed", slog.String("seller_id", seller.ID), slog.Any("err", err))
		return SellerDashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	stats := SellerStats{ProductCount: len(items), InventoryValue: decimal.Zero}
	for _, p := range items {
		if p.IsPublished() {
			stats.PublishedCount++
		}
		stats.TotalStock += p.Stock
		stats.InventoryValue = stats.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
	}

	// 未設定は審査中として扱う
	status := seller.SellerStatus
	if status == "" {
		status = model.SellerStatusPending
	}

	return SellerDashboardOutput{
		SellerStatus:   status,
		Banner:         sellerBanners[status],
		CanAddProducts: status != model.SellerStatusRejected,
		Products:       items,
		Stats:          stats,
	}, nil
}

// POST /seller/products
func (u *SellerUsecase) CreateProduct(ctx context.Context, seller *model.User, in ProductInput) (model.Product, error) {
	if seller.SellerStatus == model.SellerStatusRejected {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "seller account rejected")
	}
	if in.Status == "" {
		in.Status = model.ProductStatusPublished
	}
	if in.Stock < 1 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid input: stock")
	}

	now := u.clock.Now()
	p := applyProductInput(model.Product{
		ID:         "product-" + u.idGen.NewID(),
		SellerID:   seller.ID,
		SellerName: seller.Name,
		CreatedAt:  now,
	}, in)
	p.UpdatedAt = now

	if err := u.validator.ValidateProduct(p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var created model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		created, err = r.Products().Create(ctx, p)
		if err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  seller.ID,
			Action:       model.AuditActionCreateProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   created.ID,
			AfterJSON:    toJSON(created),
			CreatedAt:    now,
		})
	})
	if err != nil {
		u.log.ErrorContext(ctx, "create product failed", slog.String("seller_id", seller.ID), slog.Any("err", err))
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.InfoContext(ctx, "product created", slog.String("product_id", created.ID), slog.String("seller_id", seller.ID))
	return created, nil
}

// GET /seller/products/:id（他人の商品は not found）
func (u *SellerUsecase) GetOwnProduct(ctx context.Context, seller *model.User, productID string) (model.Product, error) {
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.SellerID != seller.ID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

// PUT /seller/products/:id
func (u *SellerUsecase) UpdateProduct(ctx context.Context, seller *model.User, productID string, in ProductInput) (model.Product, error) {
	before, err := u.GetOwnProduct(ctx, seller, productID)
	if err != nil {
		return model.Product{}, err
	}
	if in.Status == "" {
		in.Status = before.Status
	}

	after := applyProductInput(before, in)
	after.UpdatedAt = u.clock.Now()
	if err := u.validator.ValidateProduct(after); err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().Update(ctx, after); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  seller.ID,
			Action:       model.AuditActionUpdateProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   after.ID,
			BeforeJSON:   toJSON(before),
			AfterJSON:    toJSON(after),
			CreatedAt:    after.UpdatedAt,
		})
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "update product failed", slog.String("product_id", productID), slog.Any("err", err))
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return after, nil
}

func applyProductInput(p model.Product, in ProductInput) model.Product {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price.Round(2)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.Category = in.Category
	p.Stock = in.Stock
	p.Status = in.Status
	return p
}

// 監査ログ用のJSON文字列
func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
