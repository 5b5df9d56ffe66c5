package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// メール重複
var ErrEmailTaken = errors.New("email already taken")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。無ければ ErrUserNotFound。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ユーザー情報の更新=>アクティブかどうか・審査状態・最後のログイン更新など
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userID string) error
	// ロール別の一覧（作成日時順）
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID string) error
}
