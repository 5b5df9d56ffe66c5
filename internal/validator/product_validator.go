package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

type productForm struct {
	Title       string              `json:"title" validate:"required,max=255"`
	Description string              `json:"description" validate:"required,max=5000"`
	ImageURL    string              `json:"image_url" validate:"required,url"`
	Category    string              `json:"category" validate:"required,category"`
	Stock       int64               `json:"stock" validate:"gte=0"`
	Status      model.ProductStatus `json:"status" validate:"required,oneof=draft published"`
}

// 商品登録・編集フォームの検証。価格は0より大きいこと。
func (fv *FormValidator) ValidateProduct(p model.Product) error {
	if err := fv.check(productForm{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Stock:       p.Stock,
		Status:      p.Status,
	}); err != nil {
		return err
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: price", ErrInvalidInput)
	}
	return nil
}
