package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// /checkout のHTTP。ログインと空でないカートが必要（判定は usecase 側）。
type CheckoutHandler struct {
	uc           *usecase.CheckoutUsecase
	cookieSecure bool
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase, cookieSecure bool) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, cookieSecure: cookieSecure}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/checkout")
	g.Use(middleware.CartSession(h.cookieSecure))

	g.GET("", h.begin)
	g.POST("/shipping", h.shipping)
	g.POST("/back", h.back)
	g.POST("/payment", h.payment)
}

func (h *CheckoutHandler) begin(c echo.Context) error {
	out, err := h.uc.Begin(c.Request().Context(), middleware.CurrentUser(c), middleware.CartSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) shipping(c echo.Context) error {
	var req model.Address
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SubmitShipping(c.Request().Context(), middleware.CurrentUser(c), middleware.CartSessionID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) back(c echo.Context) error {
	out, err := h.uc.Back(c.Request().Context(), middleware.CurrentUser(c), middleware.CartSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 注文確定（確認画面用の注文を返す）
func (h *CheckoutHandler) payment(c echo.Context) error {
	var req model.PaymentInfo
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), middleware.CurrentUser(c), middleware.CartSessionID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}
