package model

import "time"

// CartSlot はカートの永続化スロット（1キー1値）。
// Payload は CartItem 配列の JSON。
type CartSlot struct {
	Key       string    `gorm:"primaryKey;type:varchar(128)"`
	Payload   []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
