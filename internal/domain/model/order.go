package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order は注文確定時の確認表示。保存はしない。
type Order struct {
	ID              string          `json:"order_id"`
	UserID          string          `json:"user_id"`
	Items           []CartItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress Address         `json:"address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	CardLast4       string          `json:"card_last4,omitempty"`
	Status          OrderStatus     `json:"status"`
	PlacedAt        time.Time       `json:"placed_at"`
}
