package model

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// 出品者の審査状態（seller 以外は空）
type SellerStatus string

const (
	SellerStatusPending  SellerStatus = "pending"
	SellerStatusApproved SellerStatus = "approved"
	SellerStatusRejected SellerStatus = "rejected"
)

type User struct {
	ID           string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"column:password_hash;not null" json:"-"`
	Role         Role         `gorm:"type:varchar(20);not null;default:'buyer';index" json:"role"`
	SellerStatus SellerStatus `gorm:"type:varchar(20)" json:"seller_status,omitempty"`
	AvatarURL    string       `gorm:"type:text" json:"avatar_url,omitempty"`
	TokenVersion int          `gorm:"not null;default:0" json:"-"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// 審査済みの出品者か
func (u User) IsApprovedSeller() bool {
	return u.Role == RoleSeller && u.SellerStatus == SellerStatusApproved
}
