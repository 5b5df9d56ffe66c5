package model

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit-card"
	PaymentMethodPayPal     PaymentMethod = "paypal"
)

// 支払い入力。カード項目は credit-card のときだけ必須。
type PaymentInfo struct {
	Method     PaymentMethod `json:"method" validate:"required,oneof=credit-card paypal"`
	CardNumber string        `json:"card_number"`
	CardName   string        `json:"card_name"`
	Expiry     string        `json:"expiry"`
	CVC        string        `json:"cvc"`
}
