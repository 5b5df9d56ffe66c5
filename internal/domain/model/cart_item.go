package model

import "github.com/shopspring/decimal"

// カートの1行。Product は追加時点のスナップショット。
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Product   Product `json:"product"`
}

// 単価×数量
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(i.Quantity))
}
