package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/infra/seed"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"
)

type sellerFixture struct {
	uc       *usecase.SellerUsecase
	products *memory.ProductStore
	audit    *memory.AuditLogStore
	users    map[string]*model.User
}

func newSellerFixture() sellerFixture {
	users := memory.NewUserStore(seed.Users("hash")...)
	products := memory.NewProductStore(seed.Products()...)
	audit := memory.NewAuditLogStore()
	tx := memory.NewTxManager(users, products, audit)

	byID := map[string]*model.User{}
	for _, u := range seed.Users("hash") {
		u := u
		byID[u.ID] = &u
	}

	return sellerFixture{
		uc:       usecase.NewSellerUsecase(tx, products, validator.New(), &seqIDGen{}, fixedClock{testNow}, discardLogger()),
		products: products,
		audit:    audit,
		users:    byID,
	}
}

func mugInput() usecase.ProductInput {
	return usecase.ProductInput{
		Title:       "Handmade Mug",
		Description: "Stoneware mug",
		Price:       decimal.RequireFromString("18.499"),
		ImageURL:    "https://example.com/mug.jpg",
		Category:    "Home Decor",
		Stock:       4,
	}
}

func TestSellerUsecase_Dashboard(t *testing.T) {
	f := newSellerFixture()

	out, err := f.uc.Dashboard(context.Background(), f.users["user-1"])

	require.NoError(t, err)
	assert.Equal(t, model.SellerStatusApproved, out.SellerStatus)
	assert.True(t, out.CanAddProducts)
	assert.Equal(t, len(out.Products), out.Stats.ProductCount)
	for _, p := range out.Products {
		assert.Equal(t, "user-1", p.SellerID)
	}

	out, err = f.uc.Dashboard(context.Background(), f.users["user-4"])
	require.NoError(t, err)
	assert.False(t, out.CanAddProducts)
	assert.Equal(t, "Account Rejected", out.Banner.Title)
}

func TestSellerUsecase_CreateProduct(t *testing.T) {
	f := newSellerFixture()
	ctx := context.Background()

	p, err := f.uc.CreateProduct(ctx, f.users["user-3"], mugInput())

	require.NoError(t, err)
	assert.Equal(t, "product-id1", p.ID)
	assert.Equal(t, "user-3", p.SellerID)
	assert.Equal(t, "Priya Pending", p.SellerName)
	assert.Equal(t, model.ProductStatusPublished, p.Status)
	assert.Equal(t, "18.50", p.Price.StringFixed(2))

	stored, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, stored.Title)

	logs, err := f.audit.List(ctx, repository.AuditLogFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionCreateProduct, logs[0].Action)
	assert.Equal(t, p.ID, logs[0].ResourceID)
}

func TestSellerUsecase_CreateProduct_Rejected(t *testing.T) {
	f := newSellerFixture()

	tests := []struct {
		name   string
		seller string
		in     func() usecase.ProductInput
		want   int
	}{
		{"rejected seller", "user-4", mugInput, http.StatusForbidden},
		{"no stock", "user-1", func() usecase.ProductInput { in := mugInput(); in.Stock = 0; return in }, http.StatusBadRequest},
		{"zero price", "user-1", func() usecase.ProductInput { in := mugInput(); in.Price = decimal.Zero; return in }, http.StatusBadRequest},
		{"unknown category", "user-1", func() usecase.ProductInput { in := mugInput(); in.Category = "Cars"; return in }, http.StatusBadRequest},
		{"missing title", "user-1", func() usecase.ProductInput { in := mugInput(); in.Title = " "; return in }, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateProduct(context.Background(), f.users[tt.seller], tt.in())
			assert.Equal(t, tt.want, httpStatus(err))
		})
	}
}

func TestSellerUsecase_UpdateProduct(t *testing.T) {
	f := newSellerFixture()
	ctx := context.Background()

	in := mugInput()
	in.Title = "Renamed Headphones"
	in.Category = "Electronics"
	out, err := f.uc.UpdateProduct(ctx, f.users["user-1"], "product-1", in)

	require.NoError(t, err)
	assert.Equal(t, "Renamed Headphones", out.Title)
	assert.Equal(t, model.ProductStatusPublished, out.Status)
	assert.Equal(t, testNow, out.UpdatedAt)

	logs, err := f.audit.List(ctx, repository.AuditLogFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].BeforeJSON, "Premium Wireless Headphones")
	assert.Contains(t, logs[0].AfterJSON, "Renamed Headphones")
}

func TestSellerUsecase_OtherSellersProduct(t *testing.T) {
	f := newSellerFixture()
	ctx := context.Background()

	_, err := f.uc.GetOwnProduct(ctx, f.users["user-3"], "product-1")
	assert.Equal(t, http.StatusNotFound, httpStatus(err))

	_, err = f.uc.UpdateProduct(ctx, f.users["user-3"], "product-1", mugInput())
	assert.Equal(t, http.StatusNotFound, httpStatus(err))
}
