package validator_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/domain/model"
	"storefront/internal/validator"
)

func validAddress() model.Address {
	return model.Address{
		FullName:   "Jane Buyer",
		Street:     "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "United States",
		Phone:      "555-0100",
	}
}

func TestValidateAddress(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.ValidateAddress(validAddress()))

	a := validAddress()
	a.City = ""
	a.Phone = ""
	err := v.ValidateAddress(a)
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "phone")
}

func TestValidatePayment(t *testing.T) {
	v := validator.New()

	card := model.PaymentInfo{
		Method:     model.PaymentMethodCreditCard,
		CardNumber: "4242 4242 4242 4242",
		CardName:   "Jane Buyer",
		Expiry:     "12/29",
		CVC:        "123",
	}

	tests := []struct {
		name    string
		mutate  func(p *model.PaymentInfo)
		wantErr bool
	}{
		{"valid card", func(p *model.PaymentInfo) {}, false},
		{"paypal needs nothing else", func(p *model.PaymentInfo) { *p = model.PaymentInfo{Method: model.PaymentMethodPayPal} }, false},
		{"no method", func(p *model.PaymentInfo) { p.Method = "" }, true},
		{"unknown method", func(p *model.PaymentInfo) { p.Method = "cash" }, true},
		{"short card number", func(p *model.PaymentInfo) { p.CardNumber = "4242 4242" }, true},
		{"letters in card number", func(p *model.PaymentInfo) { p.CardNumber = "4242 4242 4242 abcd" }, true},
		{"bad month", func(p *model.PaymentInfo) { p.Expiry = "13/29" }, true},
		{"bad expiry format", func(p *model.PaymentInfo) { p.Expiry = "1229" }, true},
		{"cvc too long", func(p *model.PaymentInfo) { p.CVC = "12345" }, true},
		{"cvc not numeric", func(p *model.PaymentInfo) { p.CVC = "12a" }, true},
		{"missing card name", func(p *model.PaymentInfo) { p.CardName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := card
			tt.mutate(&p)
			err := v.ValidatePayment(p)
			if tt.wantErr {
				assert.ErrorIs(t, err, validator.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateProduct(t *testing.T) {
	v := validator.New()
	p := model.Product{
		Title:       "Desk Lamp",
		Description: "LED lamp",
		ImageURL:    "https://example.com/lamp.jpg",
		Category:    "Home Decor",
		Price:       decimal.RequireFromString("19.99"),
		Stock:       3,
		Status:      model.ProductStatusPublished,
	}
	assert.NoError(t, v.ValidateProduct(p))

	all := p
	all.Category = model.CategoryAll
	assert.ErrorIs(t, v.ValidateProduct(all), validator.ErrInvalidInput)

	free := p
	free.Price = decimal.Zero
	err := v.ValidateProduct(free)
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
	assert.Contains(t, err.Error(), "price")

	noImage := p
	noImage.ImageURL = "not a url"
	assert.ErrorIs(t, v.ValidateProduct(noImage), validator.ErrInvalidInput)
}

func TestValidateLoginAndRegister(t *testing.T) {
	v := validator.New()
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "buyer@example.com", "password123"))
	assert.Error(t, v.ValidateLogin(ctx, "not-an-email", "password123"))
	assert.Error(t, v.ValidateLogin(ctx, "buyer@example.com", ""))

	assert.NoError(t, v.ValidateRegister(ctx, "New Seller", "new@example.com", "password123", model.RoleSeller))
	assert.Error(t, v.ValidateRegister(ctx, "Sneaky", "sneaky@example.com", "password123", model.RoleAdmin))
	assert.Error(t, v.ValidateRegister(ctx, "Short", "short@example.com", "pw", model.RoleBuyer))
}
