package middleware

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// LoadUser はJWTのユーザーを読み込み context に入れる。
// tv と DB の token_version が違う、または停止中なら強制ログアウト扱い（401）。
func LoadUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する（無ければゲスト）
			userID, ok := c.Get(CtxUserIDKey).(string)
			if !ok || userID == "" {
				return next(c)
			}

			//AuthJWTが入れたtoken_version(tv)を取得する
			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return unauthorized(c)
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return unauthorized(c)
			}

			if user.TokenVersion != tv || !user.IsActive {
				return unauthorized(c)
			}

			c.Set(CtxUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser は LoadUser が入れたユーザー（ゲストなら nil）。
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(CtxUserKey).(*model.User)
	return u
}
