package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)

type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	SellerID    string          `gorm:"type:varchar(64);not null;index" json:"seller_id"`
	SellerName  string          `gorm:"type:varchar(255)" json:"seller_name"`
	Stock       int64           `gorm:"not null" json:"stock"`
	Rating      float64         `gorm:"not null;default:0" json:"rating"`
	Reviews     int64           `gorm:"not null;default:0" json:"reviews"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'published'" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// 公開状態か
func (p Product) IsPublished() bool {
	return p.Status == ProductStatusPublished
}
