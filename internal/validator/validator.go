// Package validator は go-playground/validator による入力検証。
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"storefront/internal/domain/model"
)

var (
	// 入力が不正（メッセージに項目名を付ける）
	ErrInvalidInput = errors.New("invalid input")
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// FormValidator は checkout / auth / seller の入力検証をまとめる。
type FormValidator struct {
	v *playground.Validate
}

func New() *FormValidator {
	v := playground.New(playground.WithRequiredStructEnabled())

	// エラーの項目名は json タグ名にする
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("cardnumber", func(fl playground.FieldLevel) bool {
		return isCardNumber(fl.Field().String())
	})
	_ = v.RegisterValidation("expiry", func(fl playground.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl playground.FieldLevel) bool {
		return model.IsProductCategory(fl.Field().String())
	})

	return &FormValidator{v: v}
}

// 空白を除いて13〜19桁の数字
func isCardNumber(s string) bool {
	digits := strings.ReplaceAll(s, " ", "")
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// struct検証の結果を ErrInvalidInput にまとめる
func (fv *FormValidator) check(s any) error {
	err := fv.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
}
