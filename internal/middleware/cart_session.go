package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CartSessionCookie = "cart_session"
	CartSessionHeader = "X-Cart-Session"

	cartSessionMaxAge = 30 * 24 * time.Hour
)

// CartSession はカートのセッションIDを決める。
// cookie → ヘッダの順に探し、無ければ新しく発行して返す。
func CartSession(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(CartSessionCookie); err == nil {
				sid = strings.TrimSpace(ck.Value)
			}
			if sid == "" {
				sid = strings.TrimSpace(c.Request().Header.Get(CartSessionHeader))
			}
			if sid == "" || len(sid) > 64 {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     CartSessionCookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cartSessionMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Response().Header().Set(CartSessionHeader, sid)
			c.Set(CtxCartSessionKey, sid)
			return next(c)
		}
	}
}

func CartSessionID(c echo.Context) string {
	sid, _ := c.Get(CtxCartSessionKey).(string)
	return sid
}
