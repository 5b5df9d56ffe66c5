// Package access は画面・APIの入場判定。
// 拒否はエラーではなく、遷移先つきの Redirect として返す。
package access

import "storefront/internal/domain/model"

const (
	LoginPath = "/login"
	HomePath  = "/"
	CartPath  = "/cart"
)

type Outcome int

const (
	Allowed Outcome = iota
	Redirect
)

// Decision は判定結果。Redirect のときだけ Target が入る。
type Decision struct {
	Outcome Outcome
	Target  string
}

func Allow() Decision {
	return Decision{Outcome: Allowed}
}

func RedirectTo(target string) Decision {
	return Decision{Outcome: Redirect, Target: target}
}

func (d Decision) IsAllowed() bool {
	return d.Outcome == Allowed
}

// CanAccess は user が required ロールの画面に入れるか判定する。
// 未ログイン（nil / 無効ユーザー）は /login、ロール違いは / へ。
// required が空ならログインだけを要求する。
func CanAccess(user *model.User, required model.Role) Decision {
	if user == nil || !user.IsActive {
		return RedirectTo(LoginPath)
	}
	if required != "" && user.Role != required {
		return RedirectTo(HomePath)
	}
	return Allow()
}
