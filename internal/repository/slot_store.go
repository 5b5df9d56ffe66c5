package repository

import "context"

// SlotStore はキーごとに1つのバイト列を持つ保存先。
// カートの永続化に使う（memory / redis / postgres）。
type SlotStore interface {
	// 無ければ ErrNotFound
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	// 無くてもエラーにしない
	Remove(ctx context.Context, key string) error
}
