// Package cartengine はカートの状態遷移と保存を扱う。
// 遷移関数は純粋関数で、Engine がそれを適用して購読者へ通知する。
package cartengine

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// Add は同じ商品なら数量を加算し、無ければ末尾に追加する。
// qty が 0 以下なら何もしない。
func Add(items []model.CartItem, p model.Product, qty int64) []model.CartItem {
	if qty <= 0 || p.ID == "" {
		return clone(items)
	}

	out := clone(items)
	for i := range out {
		if out[i].ProductID == p.ID {
			out[i].Quantity += qty
			return out
		}
	}
	return append(out, model.CartItem{ProductID: p.ID, Quantity: qty, Product: p})
}

// Remove は該当商品の行を消す。無ければそのまま。
func Remove(items []model.CartItem, productID string) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// UpdateQuantity は数量を置き換える。0以下なら行を消す。
func UpdateQuantity(items []model.CartItem, productID string, qty int64) []model.CartItem {
	if qty <= 0 {
		return Remove(items, productID)
	}

	out := clone(items)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = qty
			break
		}
	}
	return out
}

// 数量の合計
func TotalItems(items []model.CartItem) int64 {
	var n int64
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// 単価×数量の合計
func Subtotal(items []model.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// 該当商品の数量（無ければ0）
func QuantityOf(items []model.CartItem, productID string) int64 {
	for _, it := range items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

func clone(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}
