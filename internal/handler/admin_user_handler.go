package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

type SellerStatusUpdateRequest struct {
	Status model.SellerStatus `json:"status"`
}

// 出品者審査とユーザー管理
type AdminUserHandler struct {
	uc *usecase.AdminUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo) {
	// /admin 配下は全部「ログイン + token_version一致 + admin限定」
	admin := e.Group("/admin", middleware.RequireRole(model.RoleAdmin))

	admin.GET("/sellers", h.listSellers)
	admin.PUT("/sellers/:id/status", h.updateSellerStatus)
	admin.GET("/users", h.listBuyers)
	admin.POST("/users/:id/ban", h.ban)
	admin.DELETE("/users/:id", h.delete)
}

func (h *AdminUserHandler) listSellers(c echo.Context) error {
	out, err := h.uc.ListSellers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) listBuyers(c echo.Context) error {
	out, err := h.uc.ListBuyers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) updateSellerStatus(c echo.Context) error {
	var req SellerStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 操作した管理者IDを取得（監査ログ用）
	adminID := middleware.CurrentUser(c).ID

	out, err := h.uc.UpdateSellerStatus(c.Request().Context(), adminID, c.Param("id"), usecase.AdminUpdateSellerStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) ban(c echo.Context) error {
	out, err := h.uc.BanUser(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	if err := h.uc.DeleteUser(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "deleted"})
}
