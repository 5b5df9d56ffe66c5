package validator

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerForm struct {
	Name     string     `json:"name" validate:"required,max=100"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Role     model.Role `json:"role" validate:"required,oneof=buyer seller"`
}

// ログインの入力を検証
func (fv *FormValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	return fv.check(loginForm{Email: strings.TrimSpace(email), Password: password})
}

// サインアップの入力を検証（admin では登録できない）
func (fv *FormValidator) ValidateRegister(ctx context.Context, name, email, password string, role model.Role) error {
	return fv.check(registerForm{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     role,
	})
}
