package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/cartengine"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/memory"
	"storefront/internal/infra/security"
	"storefront/internal/infra/seed"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"
)

const (
	testSecret   = "test-secret"
	seedPassword = "password123"
)

// =====================
// helper
// =====================

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func newTestClient(t *testing.T) *TestClient {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher := security.NewBcryptPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(seedPassword)
	require.NoError(t, err)

	users := memory.NewUserStore(seed.Users(hash)...)
	products := memory.NewProductStore(seed.Products()...)
	audit := memory.NewAuditLogStore()
	tx := memory.NewTxManager(users, products, audit)

	carts, err := cartengine.NewRegistry(16, memory.NewSlotStore(), log)
	require.NoError(t, err)

	idGen := security.UUIDGenerator{}
	clock := security.RealClock{}
	v := validator.New()

	productUC := usecase.NewProductUsecase(products, users, log)
	checkoutUC, err := usecase.NewCheckoutUsecase(carts, v, idGen, clock, 16, log)
	require.NoError(t, err)
	authUC := usecase.NewAuthUsecase(users, hasher, security.NewBcryptPasswordVerifier(),
		security.NewJWTIssuer(testSecret, time.Hour), v, idGen, clock, log)
	adminUC := usecase.NewAdminUsecase(tx, users, products, audit, clock, log)

	srv := server.New(server.Options{Addr: ":0", JWTSecret: testSecret, FEURL: "http://localhost:5173"}, users, server.Handlers{
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(usecase.NewCartUsecase(carts, productUC, log), false),
		Checkout:     handler.NewCheckoutHandler(checkoutUC, false),
		Auth:         handler.NewAuthHandler(authUC),
		Seller:       handler.NewSellerHandler(usecase.NewSellerUsecase(tx, products, v, idGen, clock, log)),
		AdminUser:    handler.NewAdminUserHandler(adminUC),
		AdminProduct: handler.NewAdminProductHandler(adminUC),
	}, log)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &TestClient{
		BaseURL: ts.URL,
		HTTP:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

func (c *TestClient) doJSON(t *testing.T, method string, path string, bearer string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.BaseURL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equal(t, want, resp.StatusCode, "body=%s", string(body))
}

func mustDecode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body=%s", string(body))
	return v
}

func login(t *testing.T, c *TestClient, email string) string {
	t.Helper()
	return loginWith(t, c, email, seedPassword)
}

func loginWith(t *testing.T, c *TestClient, email, password string) string {
	t.Helper()
	resp, body := c.doJSON(t, http.MethodPost, "/auth/login", "", usecase.AuthLoginRequest{Email: email, Password: password})
	requireStatus(t, resp, http.StatusOK, body)
	return mustDecode[usecase.AuthLoginResponse](t, body).Token.AccessToken
}

type cartBody struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int64            `json:"total_items"`
	Subtotal   decimal.Decimal  `json:"subtotal"`
	Tax        decimal.Decimal  `json:"tax"`
	Total      decimal.Decimal  `json:"total"`
}

type checkoutBody struct {
	Step    string        `json:"step"`
	Address model.Address `json:"address"`
	Cart    cartBody      `json:"cart"`
}

func shippingAddress() model.Address {
	return model.Address{
		FullName:   "Jane Buyer",
		Street:     "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "United States",
		Phone:      "555-0100",
	}
}

// =====================
// scenarios
// =====================

func TestServer_Health(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.doJSON(t, http.MethodGet, "/health", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
}

func TestServer_Catalog(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.doJSON(t, http.MethodGet, "/products?category=Electronics&sort=priceLow", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	list := mustDecode[usecase.ProductListOutput](t, body)
	require.NotEmpty(t, list.Items)
	for _, p := range list.Items {
		assert.Equal(t, "Electronics", p.Category)
	}
	assert.Equal(t, "category=Electronics&sort=priceLow", list.Query)

	resp, body = c.doJSON(t, http.MethodGet, "/products?sort=cheapest", "", nil)
	requireStatus(t, resp, http.StatusBadRequest, body)

	// 下書き・審査中の出品者の商品は見えない
	for _, id := range []string{"product-6", "product-7", "nope"} {
		resp, body = c.doJSON(t, http.MethodGet, "/products/"+id, "", nil)
		requireStatus(t, resp, http.StatusNotFound, body)
	}

	resp, body = c.doJSON(t, http.MethodGet, "/products/product-1", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	detail := mustDecode[usecase.ProductDetailOutput](t, body)
	assert.Equal(t, "product-1", detail.Product.ID)
	for _, r := range detail.Related {
		assert.NotEqual(t, "product-1", r.ID)
		assert.Equal(t, detail.Product.Category, r.Category)
	}

	resp, body = c.doJSON(t, http.MethodGet, "/categories", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	assert.Equal(t, model.Categories, mustDecode[[]string](t, body))
}

func TestServer_GuestCartThenCheckout(t *testing.T) {
	c := newTestClient(t)

	//ゲストでカートに入れる（cookie でセッションが続く）
	resp, body := c.doJSON(t, http.MethodPost, "/cart", "", handler.AddCartRequest{ProductID: "product-1", Quantity: 2})
	requireStatus(t, resp, http.StatusOK, body)
	assert.NotEmpty(t, resp.Header.Get("X-Cart-Session"))

	resp, body = c.doJSON(t, http.MethodGet, "/cart", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	cart := mustDecode[cartBody](t, body)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.TotalItems)
	assert.Equal(t, "299.98", cart.Subtotal.StringFixed(2))
	assert.Equal(t, "24.00", cart.Tax.StringFixed(2))
	assert.Equal(t, "323.98", cart.Total.StringFixed(2))

	//在庫超過
	tooMany := int64(999)
	resp, body = c.doJSON(t, http.MethodPatch, "/cart/product-1", "", handler.UpdateCartItemRequest{Quantity: &tooMany})
	requireStatus(t, resp, http.StatusBadRequest, body)

	//quantity 省略は行を消さずに 400
	resp, body = c.doJSON(t, http.MethodPatch, "/cart/product-1", "", map[string]any{})
	requireStatus(t, resp, http.StatusBadRequest, body)
	assert.Equal(t, "quantity is required", mustDecode[handler.ErrorResponse](t, body).Error)

	resp, body = c.doJSON(t, http.MethodGet, "/cart", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	assert.Equal(t, int64(2), mustDecode[cartBody](t, body).TotalItems)

	//未ログインは /login へ
	resp, body = c.doJSON(t, http.MethodGet, "/checkout", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
	assert.Equal(t, "/login", mustDecode[handler.ErrorResponse](t, body).Redirect)

	token := login(t, c, "buyer@example.com")

	resp, body = c.doJSON(t, http.MethodGet, "/checkout", token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	co := mustDecode[checkoutBody](t, body)
	assert.Equal(t, "shipping", co.Step)
	assert.Equal(t, "Jane Buyer", co.Address.FullName)
	assert.Equal(t, model.DefaultCountry, co.Address.Country)

	//支払いは配送先の前には出来ない
	resp, body = c.doJSON(t, http.MethodPost, "/checkout/payment", token, model.PaymentInfo{Method: model.PaymentMethodPayPal})
	requireStatus(t, resp, http.StatusConflict, body)

	resp, body = c.doJSON(t, http.MethodPost, "/checkout/shipping", token, model.Address{FullName: "Jane"})
	requireStatus(t, resp, http.StatusBadRequest, body)

	resp, body = c.doJSON(t, http.MethodPost, "/checkout/shipping", token, shippingAddress())
	requireStatus(t, resp, http.StatusOK, body)
	assert.Equal(t, "payment", mustDecode[checkoutBody](t, body).Step)

	resp, body = c.doJSON(t, http.MethodPost, "/checkout/payment", token, model.PaymentInfo{
		Method:     model.PaymentMethodCreditCard,
		CardNumber: "4242 4242 4242 4242",
		CardName:   "Jane Buyer",
		Expiry:     "12/30",
		CVC:        "123",
	})
	requireStatus(t, resp, http.StatusCreated, body)
	order := mustDecode[model.Order](t, body)
	assert.True(t, strings.HasPrefix(order.ID, "ORD-"))
	assert.Equal(t, "user-2", order.UserID)
	assert.Equal(t, "4242", order.CardLast4)
	assert.Equal(t, "323.98", order.Total.StringFixed(2))
	assert.Equal(t, shippingAddress(), order.ShippingAddress)

	//確定後はカートが空、チェックアウトは /cart へ戻される
	resp, body = c.doJSON(t, http.MethodGet, "/cart", "", nil)
	requireStatus(t, resp, http.StatusOK, body)
	assert.Empty(t, mustDecode[cartBody](t, body).Items)

	resp, body = c.doJSON(t, http.MethodGet, "/checkout", token, nil)
	requireStatus(t, resp, http.StatusConflict, body)
	assert.Equal(t, "/cart", mustDecode[handler.ErrorResponse](t, body).Redirect)
}

func TestServer_AuthLifecycle(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.doJSON(t, http.MethodPost, "/auth/login", "", usecase.AuthLoginRequest{Email: "buyer@example.com", Password: "wrong-password"})
	requireStatus(t, resp, http.StatusUnauthorized, body)

	resp, body = c.doJSON(t, http.MethodPost, "/auth/login", "", usecase.AuthLoginRequest{Email: "banned@example.com", Password: seedPassword})
	requireStatus(t, resp, http.StatusForbidden, body)

	resp, body = c.doJSON(t, http.MethodPost, "/auth/register", "", usecase.AuthRegisterRequest{
		Name: "New Seller", Email: "new@example.com", Password: "longenough", Role: model.RoleSeller,
	})
	requireStatus(t, resp, http.StatusCreated, body)
	reg := mustDecode[usecase.AuthRegisterResponse](t, body)
	assert.Equal(t, model.SellerStatusPending, reg.User.SellerStatus)

	resp, body = c.doJSON(t, http.MethodPost, "/auth/register", "", usecase.AuthRegisterRequest{
		Name: "Dup", Email: "new@example.com", Password: "longenough",
	})
	requireStatus(t, resp, http.StatusConflict, body)

	token := loginWith(t, c, "new@example.com", "longenough")

	resp, body = c.doJSON(t, http.MethodGet, "/profile", token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	assert.Equal(t, "new@example.com", mustDecode[usecase.UserDTO](t, body).Email)

	resp, body = c.doJSON(t, http.MethodPost, "/auth/logout", token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	//ログアウト後の古いトークンは無効
	resp, body = c.doJSON(t, http.MethodGet, "/profile", token, nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}

func TestServer_SellerAndAdmin(t *testing.T) {
	c := newTestClient(t)
	buyer := login(t, c, "buyer@example.com")
	seller := login(t, c, "pending@example.com")
	admin := login(t, c, "admin@example.com")

	//ロール違いは / へ
	resp, body := c.doJSON(t, http.MethodGet, "/seller", buyer, nil)
	requireStatus(t, resp, http.StatusForbidden, body)
	assert.Equal(t, "/", mustDecode[handler.ErrorResponse](t, body).Redirect)

	resp, body = c.doJSON(t, http.MethodGet, "/admin", seller, nil)
	requireStatus(t, resp, http.StatusForbidden, body)

	resp, body = c.doJSON(t, http.MethodGet, "/seller", seller, nil)
	requireStatus(t, resp, http.StatusOK, body)
	dash := mustDecode[usecase.SellerDashboardOutput](t, body)
	assert.Equal(t, model.SellerStatusPending, dash.SellerStatus)
	assert.True(t, dash.CanAddProducts)

	resp, body = c.doJSON(t, http.MethodPost, "/seller/products", seller, handler.ProductRequest{
		Title:       "Handmade Mug",
		Description: "Stoneware mug",
		Price:       decimal.RequireFromString("18.50"),
		ImageURL:    "https://example.com/mug.jpg",
		Category:    "Home Decor",
		Stock:       4,
	})
	requireStatus(t, resp, http.StatusCreated, body)
	created := mustDecode[model.Product](t, body)

	//審査中の出品者の商品はまだ公開されない
	resp, body = c.doJSON(t, http.MethodGet, "/products/"+created.ID, "", nil)
	requireStatus(t, resp, http.StatusNotFound, body)

	resp, body = c.doJSON(t, http.MethodGet, "/admin", admin, nil)
	requireStatus(t, resp, http.StatusOK, body)
	stats := mustDecode[usecase.AdminStats](t, body)
	assert.Equal(t, 1, stats.PendingSellers)
	assert.Equal(t, int64(11), stats.TotalProducts)

	resp, body = c.doJSON(t, http.MethodPut, "/admin/sellers/user-3/status", admin, handler.SellerStatusUpdateRequest{Status: model.SellerStatusApproved})
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(t, http.MethodGet, "/products/"+created.ID, "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(t, http.MethodPost, "/admin/users/admin-1/ban", admin, nil)
	requireStatus(t, resp, http.StatusForbidden, body)

	resp, body = c.doJSON(t, http.MethodPost, "/admin/users/user-2/ban", admin, nil)
	requireStatus(t, resp, http.StatusOK, body)

	//停止されたユーザーのトークンは使えない
	resp, body = c.doJSON(t, http.MethodGet, "/profile", buyer, nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	resp, body = c.doJSON(t, http.MethodGet, "/admin/audit-logs?limit=10", admin, nil)
	requireStatus(t, resp, http.StatusOK, body)
	logs := mustDecode[[]model.AuditLog](t, body)
	require.Len(t, logs, 3)
	assert.Equal(t, model.AuditActionBanUser, logs[0].Action)

	resp, body = c.doJSON(t, http.MethodGet, "/admin/audit-logs?limit=1000", admin, nil)
	requireStatus(t, resp, http.StatusBadRequest, body)
}
