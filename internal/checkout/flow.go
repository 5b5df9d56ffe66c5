// Package checkout は配送先→支払い→確定の手続きを扱う。
package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/access"
	"storefront/internal/cartengine"
	"storefront/internal/domain/model"
)

type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	// 終端。ここから戻る遷移はない。
	StepPlaced Step = "placed"
)

var (
	ErrInvalidStep = errors.New("invalid step")
	ErrEmptyCart   = errors.New("cart is empty")
)

// 入力チェックの約束（go-playground/validator 実装は internal/validator）
type Validator interface {
	ValidateAddress(a model.Address) error
	ValidatePayment(p model.PaymentInfo) error
}

// Guard は手続きに入れるか判定する。
// 未ログインは /login、カートが空で未確定なら /cart。
func Guard(user *model.User, cart *cartengine.Engine, placed bool) access.Decision {
	if d := access.CanAccess(user, ""); !d.IsAllowed() {
		return d
	}
	if !placed && cart.TotalItems() == 0 {
		return access.RedirectTo(access.CartPath)
	}
	return access.Allow()
}

// Flow は1回分のチェックアウト。カートは持たず、確定時に渡された最新のカートを使う。
type Flow struct {
	mu        sync.Mutex
	userID    string
	validator Validator
	newID     func() string
	now       func() time.Time

	step    Step
	address model.Address
	order   *model.Order
}

type Option func(*Flow)

func WithIDGenerator(fn func() string) Option {
	return func(f *Flow) { f.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(f *Flow) { f.now = fn }
}

// NewFlow は Shipping から始まる Flow を作る。氏名と国は初期値を入れておく。
func NewFlow(user model.User, v Validator, opts ...Option) *Flow {
	f := &Flow{
		userID:    user.ID,
		validator: v,
		newID:     defaultOrderID,
		now:       time.Now,
		step:      StepShipping,
		address: model.Address{
			FullName: user.Name,
			Country:  model.DefaultCountry,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) UserID() string {
	return f.userID
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Address() model.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

// 確定済みなら確認表示を返す
func (f *Flow) Order() (model.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.order == nil {
		return model.Order{}, false
	}
	return *f.order, true
}

// SubmitShipping は住所を受け取り Payment へ進む。Payment からの出し直しも可。
func (f *Flow) SubmitShipping(a model.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepPlaced {
		return ErrInvalidStep
	}
	if strings.TrimSpace(a.Country) == "" {
		a.Country = model.DefaultCountry
	}
	if err := f.validator.ValidateAddress(a); err != nil {
		return err
	}

	f.address = a
	f.step = StepPayment
	return nil
}

// Back は Payment から Shipping に戻る。
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return ErrInvalidStep
	}
	f.step = StepShipping
	return nil
}

// PlaceOrder は支払いを受け付けて確定し、cart を空にする。
// 確認表示の金額は確定直前の cart から計算する。
func (f *Flow) PlaceOrder(ctx context.Context, cart *cartengine.Engine, p model.PaymentInfo) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return model.Order{}, ErrInvalidStep
	}
	if err := f.validator.ValidatePayment(p); err != nil {
		return model.Order{}, err
	}

	items := cart.Items()
	if len(items) == 0 {
		return model.Order{}, ErrEmptyCart
	}

	sum := Summarize(items)
	order := model.Order{
		ID:              f.newID(),
		UserID:          f.userID,
		Items:           sum.Items,
		Subtotal:        sum.Subtotal,
		Tax:             sum.Tax,
		Shipping:        sum.Shipping,
		Total:           sum.Total,
		ShippingAddress: f.address,
		PaymentMethod:   p.Method,
		Status:          model.OrderStatusPending,
		PlacedAt:        f.now().UTC(),
	}
	if p.Method == model.PaymentMethodCreditCard {
		order.CardLast4 = last4(p.CardNumber)
	}

	cart.ClearCart(ctx)
	f.order = &order
	f.step = StepPlaced
	return order, nil
}

func defaultOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func last4(cardNumber string) string {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
