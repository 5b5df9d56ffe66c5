package checkout

import (
	"github.com/shopspring/decimal"

	"storefront/internal/cartengine"
	"storefront/internal/domain/model"
)

// 消費税率（8%）
var TaxRate = decimal.RequireFromString("0.08")

// Summary はカートと金額の表示用まとめ。送料は常に0（Free）。
type Summary struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int64            `json:"total_items"`
	Subtotal   decimal.Decimal  `json:"subtotal"`
	Tax        decimal.Decimal  `json:"tax"`
	Shipping   decimal.Decimal  `json:"shipping"`
	Total      decimal.Decimal  `json:"total"`
}

// 小数2桁に丸めた税額
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// subtotal × 1.08
func Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(Tax(subtotal)).Round(2)
}

func Summarize(items []model.CartItem) Summary {
	if items == nil {
		items = []model.CartItem{}
	}
	subtotal := cartengine.Subtotal(items).Round(2)
	return Summary{
		Items:      items,
		TotalItems: cartengine.TotalItems(items),
		Subtotal:   subtotal,
		Tax:        Tax(subtotal),
		Shipping:   decimal.Zero,
		Total:      Total(subtotal),
	}
}
