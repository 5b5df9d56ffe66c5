package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/access"
	"storefront/internal/domain/model"
)

// RequireRole は context のユーザーが role を持つか確認します。
// role が空ならログインだけを要求する。
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := access.CanAccess(CurrentUser(c), role)
			if d.IsAllowed() {
				return next(c)
			}

			//未ログインは401、ロール違いは403
			if d.Target == access.LoginPath {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", d.Target))
			}
			return c.JSON(http.StatusForbidden, errorJSON("forbidden", d.Target))
		}
	}
}

func RequireLogin() echo.MiddlewareFunc {
	return RequireRole("")
}
