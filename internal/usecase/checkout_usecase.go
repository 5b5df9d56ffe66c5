package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"storefront/internal/access"
	"storefront/internal/cartengine"
	"storefront/internal/checkout"
	"storefront/internal/domain/model"
)

// CheckoutUsecase は /checkout の手続き。Flow はカートセッションごとに持つ。
type CheckoutUsecase struct {
	mu        sync.Mutex
	carts     *cartengine.Registry
	flows     *lru.Cache[string, *checkout.Flow]
	validator checkout.Validator
	idGen     IDGenerator
	clock     Clock
	log       *slog.Logger
}

func NewCheckoutUsecase(
	carts *cartengine.Registry,
	validator checkout.Validator,
	idGen IDGenerator,
	clock Clock,
	size int,
	log *slog.Logger,
) (*CheckoutUsecase, error) {
	flows, err := lru.New[string, *checkout.Flow](size)
	if err != nil {
		return nil, fmt.Errorf("checkout flows: %w", err)
	}
	return &CheckoutUsecase{
		carts:     carts,
		flows:     flows,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
		log:       log,
	}, nil
}

type CheckoutOutput struct {
	Step    checkout.Step `json:"step"`
	Address model.Address `json:"address"`
	Cart    CartResponse  `json:"cart"`
}

// GET /checkout（開始または再開）
func (u *CheckoutUsecase) Begin(ctx context.Context, user *model.User, sessionID string) (CheckoutOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	flow, cart, err := u.enter(ctx, user, sessionID)
	if err != nil {
		return CheckoutOutput{}, err
	}
	return output(flow, cart), nil
}

// POST /checkout/shipping
func (u *CheckoutUsecase) SubmitShipping(ctx context.Context, user *model.User, sessionID string, addr model.Address) (CheckoutOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	flow, cart, err := u.enter(ctx, user, sessionID)
	if err != nil {
		return CheckoutOutput{}, err
	}
	if err := flow.SubmitShipping(addr); err != nil {
		return CheckoutOutput{}, flowError(err)
	}
	return output(flow, cart), nil
}

// POST /checkout/back
func (u *CheckoutUsecase) Back(ctx context.Context, user *model.User, sessionID string) (CheckoutOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	flow, cart, err := u.enter(ctx, user, sessionID)
	if err != nil {
		return CheckoutOutput{}, err
	}
	if err := flow.Back(); err != nil {
		return CheckoutOutput{}, flowError(err)
	}
	return output(flow, cart), nil
}

// POST /checkout/payment
// 確定したら Flow を捨てる。次に入るときはカートが空なので /cart へ戻される。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, user *model.User, sessionID string, payment model.PaymentInfo) (model.Order, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	flow, cart, err := u.enter(ctx, user, sessionID)
	if err != nil {
		return model.Order{}, err
	}

	// カートは毎回 Registry から引き直したものを使う
	order, err := flow.PlaceOrder(ctx, cart, payment)
	if err != nil {
		return model.Order{}, flowError(err)
	}
	u.flows.Remove(sessionID)

	u.log.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("total", order.Total.StringFixed(2)),
		slog.String("payment_method", string(order.PaymentMethod)),
	)
	return order, nil
}

// 入場判定をして、このセッションの Flow を返す（無ければ作る）。
func (u *CheckoutUsecase) enter(ctx context.Context, user *model.User, sessionID string) (*checkout.Flow, *cartengine.Engine, error) {
	if sessionID == "" {
		return nil, nil, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}

	cart, err := openCart(ctx, u.carts, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if d := checkout.Guard(user, cart, false); !d.IsAllowed() {
		return nil, nil, guardError(d)
	}

	if flow, ok := u.flows.Get(sessionID); ok && flow.UserID() == user.ID {
		return flow, cart, nil
	}

	flow := checkout.NewFlow(*user, u.validator,
		checkout.WithIDGenerator(func() string { return "ORD-" + u.idGen.NewID() }),
		checkout.WithClock(u.clock.Now),
	)
	u.flows.Add(sessionID, flow)
	return flow, cart, nil
}

func output(flow *checkout.Flow, cart *cartengine.Engine) CheckoutOutput {
	return CheckoutOutput{
		Step:    flow.Step(),
		Address: flow.Address(),
		Cart:    checkout.Summarize(cart.Items()),
	}
}

func guardError(d access.Decision) error {
	switch d.Target {
	case access.LoginPath:
		return NewRedirectError(http.StatusUnauthorized, "unauthorized", d.Target)
	case access.CartPath:
		return NewRedirectError(http.StatusConflict, "cart is empty", d.Target)
	default:
		return NewRedirectError(http.StatusForbidden, "forbidden", d.Target)
	}
}

func flowError(err error) error {
	switch {
	case errors.Is(err, checkout.ErrInvalidStep):
		return NewHTTPError(http.StatusConflict, "invalid step")
	case errors.Is(err, checkout.ErrEmptyCart):
		return NewRedirectError(http.StatusConflict, "cart is empty", access.CartPath)
	default:
		// 入力エラー（項目名つき）
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
