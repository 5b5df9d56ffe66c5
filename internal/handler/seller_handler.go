package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// 商品登録・編集の入力（price は数値でも文字列でもよい）
type ProductRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	ImageURL    string              `json:"image_url"`
	Category    string              `json:"category"`
	Stock       int64               `json:"stock"`
	Status      model.ProductStatus `json:"status"`
}

func (r ProductRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Stock:       r.Stock,
		Status:      r.Status,
	}
}

// /seller 配下（seller ロール限定）
type SellerHandler struct {
	uc *usecase.SellerUsecase
}

func NewSellerHandler(uc *usecase.SellerUsecase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

func (h *SellerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/seller", middleware.RequireRole(model.RoleSeller))

	g.GET("", h.dashboard)
	g.POST("/products", h.create)
	g.GET("/products/:id", h.get)
	g.PUT("/products/:id", h.update)
}

func (h *SellerHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), middleware.CurrentUser(c), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *SellerHandler) get(c echo.Context) error {
	p, err := h.uc.GetOwnProduct(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *SellerHandler) update(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
