package validator

import "storefront/internal/domain/model"

// カード入力（credit-card のときだけ検証する）
type cardForm struct {
	CardNumber string `json:"card_number" validate:"required,max=19,cardnumber"`
	CardName   string `json:"card_name" validate:"required,max=100"`
	Expiry     string `json:"expiry" validate:"required,len=5,expiry"`
	CVC        string `json:"cvc" validate:"required,min=3,max=4,numeric"`
}

// 配送先は全項目必須
func (fv *FormValidator) ValidateAddress(a model.Address) error {
	return fv.check(a)
}

// 支払い方法の確認。paypal は追加項目なし。
func (fv *FormValidator) ValidatePayment(p model.PaymentInfo) error {
	if err := fv.check(p); err != nil {
		return err
	}
	if p.Method != model.PaymentMethodCreditCard {
		return nil
	}
	return fv.check(cardForm{
		CardNumber: p.CardNumber,
		CardName:   p.CardName,
		Expiry:     p.Expiry,
		CVC:        p.CVC,
	})
}
