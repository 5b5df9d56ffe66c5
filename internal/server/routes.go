package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/handler"
)

type Handlers struct {
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Auth         *handler.AuthHandler
	Seller       *handler.SellerHandler
	AdminUser    *handler.AdminUserHandler
	AdminProduct *handler.AdminProductHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Seller.RegisterRoutes(e)
	h.AdminUser.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e)
}
