package cartengine

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// 上限を超える追加
var ErrLimitExceeded = errors.New("quantity limit exceeded")

// State は遷移後のカートのスナップショット。
type State struct {
	Items      []model.CartItem
	TotalItems int64
	Subtotal   decimal.Decimal
}

// Listener は遷移のたびに呼ばれる。Engine のメソッドを呼び返してはいけない。
type Listener func(ctx context.Context, s State)

// Engine は1つのカートを持ち、遷移を適用して購読者に配る。
type Engine struct {
	mu        sync.Mutex
	items     []model.CartItem
	listeners map[int]Listener
	nextID    int
}

func New(items []model.CartItem) *Engine {
	return &Engine{
		items:     clone(items),
		listeners: map[int]Listener{},
	}
}

func (e *Engine) Items() []model.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.items)
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.items)
}

func (e *Engine) TotalItems() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return TotalItems(e.items)
}

func (e *Engine) Subtotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Subtotal(e.items)
}

func (e *Engine) Quantity(productID string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return QuantityOf(e.items, productID)
}

func (e *Engine) AddToCart(ctx context.Context, p model.Product, qty int64) State {
	return e.apply(ctx, func(items []model.CartItem) []model.CartItem {
		return Add(items, p, qty)
	})
}

// AddWithinLimit は追加後の数量が limit 以下のときだけ追加する。
// 判定と追加は同じロックの中で行う。
func (e *Engine) AddWithinLimit(ctx context.Context, p model.Product, qty, limit int64) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if QuantityOf(e.items, p.ID)+qty > limit {
		return snapshot(e.items), ErrLimitExceeded
	}
	return e.commit(ctx, Add(e.items, p, qty)), nil
}

func (e *Engine) RemoveFromCart(ctx context.Context, productID string) State {
	return e.apply(ctx, func(items []model.CartItem) []model.CartItem {
		return Remove(items, productID)
	})
}

func (e *Engine) UpdateQuantity(ctx context.Context, productID string, qty int64) State {
	return e.apply(ctx, func(items []model.CartItem) []model.CartItem {
		return UpdateQuantity(items, productID, qty)
	})
}

func (e *Engine) ClearCart(ctx context.Context) State {
	return e.apply(ctx, func([]model.CartItem) []model.CartItem {
		return []model.CartItem{}
	})
}

// Subscribe は購読を登録し、解除用の関数を返す。
func (e *Engine) Subscribe(l Listener) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = l
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.listeners, id)
			e.mu.Unlock()
		})
	}
}

// 通知もロック中に行う（保存順が遷移順とずれないように）
func (e *Engine) apply(ctx context.Context, fn func([]model.CartItem) []model.CartItem) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.commit(ctx, fn(e.items))
}

// commit は e.mu を持った状態で呼ぶ。
func (e *Engine) commit(ctx context.Context, items []model.CartItem) State {
	e.items = items
	s := snapshot(e.items)

	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		e.listeners[id](ctx, snapshot(e.items))
	}
	return s
}

func snapshot(items []model.CartItem) State {
	return State{
		Items:      clone(items),
		TotalItems: TotalItems(items),
		Subtotal:   Subtotal(items),
	}
}
