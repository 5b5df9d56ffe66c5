package cartengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// スロットキーの接頭辞
const KeyPrefix = "cart:"

var (
	// 保存内容が CartItem 配列として読めない
	ErrMalformedSlot = errors.New("malformed cart slot")
	// 保存先から読めなかった（タイムアウトなど）。保存内容はそのまま残す
	ErrSlotUnavailable = errors.New("cart slot unavailable")
)

// セッションごとのスロットキー
func SlotKey(sessionID string) string {
	return KeyPrefix + sessionID
}

// Encode は CartItem 配列を JSON にする（空でも []）。
func Encode(items []model.CartItem) ([]byte, error) {
	if items == nil {
		items = []model.CartItem{}
	}
	return json.Marshal(items)
}

// Decode は保存内容を検証しながら読む。
// 配列でない、productId が空、数量が1未満、商品IDの不一致、重複はすべて ErrMalformedSlot。
func Decode(data []byte) ([]model.CartItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not an array", ErrMalformedSlot)
	}

	var items []model.CartItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}

	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: item %d has empty product_id", ErrMalformedSlot, i)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d has quantity %d", ErrMalformedSlot, i, it.Quantity)
		}
		if it.Product.ID != it.ProductID {
			return nil, fmt.Errorf("%w: item %d product mismatch", ErrMalformedSlot, i)
		}
		if _, dup := seen[it.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %s", ErrMalformedSlot, it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items, nil
}

// Slot は1つのカートの保存先。
type Slot struct {
	store repository.SlotStore
	key   string
	log   *slog.Logger
}

func NewSlot(store repository.SlotStore, key string, log *slog.Logger) *Slot {
	if log == nil {
		log = slog.Default()
	}
	return &Slot{store: store, key: key, log: log}
}

// Load は保存内容を復元する。
// 無ければ空カート。壊れていればスロットを消して空カート。
// 読み出し自体の失敗は ErrSlotUnavailable で返し、スロットには触らない。
func (s *Slot) Load(ctx context.Context) ([]model.CartItem, error) {
	data, err := s.store.Read(ctx, s.key)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		s.log.WarnContext(ctx, "cart slot read failed", slog.String("key", s.key), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	}

	items, err := Decode(data)
	if err != nil {
		s.log.WarnContext(ctx, "discarding malformed cart slot", slog.String("key", s.key), slog.Any("err", err))
		if rmErr := s.store.Remove(ctx, s.key); rmErr != nil {
			s.log.WarnContext(ctx, "cart slot reset failed", slog.String("key", s.key), slog.Any("err", rmErr))
		}
		return []model.CartItem{}, nil
	}
	return items, nil
}

// Save は状態を書き込む。失敗はログだけで呼び出し元には返さない。
func (s *Slot) Save(ctx context.Context, items []model.CartItem) {
	data, err := Encode(items)
	if err != nil {
		s.log.ErrorContext(ctx, "cart encode failed", slog.String("key", s.key), slog.Any("err", err))
		return
	}
	if err := s.store.Write(ctx, s.key, data); err != nil {
		s.log.ErrorContext(ctx, "cart slot write failed", slog.String("key", s.key), slog.Any("err", err))
	}
}

// Open はスロットから復元した Engine を作り、以後の遷移を保存するよう購読させる。
// 読み出しに失敗したら Engine は作らない（空の状態で上書きしないため）。
func Open(ctx context.Context, store repository.SlotStore, key string, log *slog.Logger) (*Engine, error) {
	slot := NewSlot(store, key, log)
	items, err := slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := New(items)
	e.Subscribe(func(ctx context.Context, s State) {
		slot.Save(ctx, s.Items)
	})
	return e, nil
}
