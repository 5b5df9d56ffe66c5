// Package seed はデモ用の初期データ。
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// Users は初期ユーザー。パスワードは全員 passwordHash を使う。
func Users(passwordHash string) []model.User {
	return []model.User{
		{
			ID:           "user-1",
			Name:         "John Seller",
			Email:        "seller@example.com",
			PasswordHash: passwordHash,
			Role:         model.RoleSeller,
			SellerStatus: model.SellerStatusApproved,
			AvatarURL:    "https://randomuser.me/api/portraits/men/1.jpg",
			IsActive:     true,
			CreatedAt:    at("2023-01-15T14:23:45Z"),
			UpdatedAt:    at("2023-01-15T14:23:45Z"),
		},
		{
			ID:           "user-2",
			Name:         "Jane Buyer",
			Email:        "buyer@example.com",
			PasswordHash: passwordHash,
			Role:         model.RoleBuyer,
			AvatarURL:    "https://randomuser.me/api/portraits/women/2.jpg",
			IsActive:     true,
			CreatedAt:    at("2023-02-20T09:15:30Z"),
			UpdatedAt:    at("2023-02-20T09:15:30Z"),
		},
		{
			ID:           "admin-1",
			Name:         "Admin User",
			Email:        "admin@example.com",
			PasswordHash: passwordHash,
			Role:         model.RoleAdmin,
			AvatarURL:    "https://randomuser.me/api/portraits/men/3.jpg",
			IsActive:     true,
			CreatedAt:    at("2023-01-01T00:00:00Z"),
			UpdatedAt:    at("2023-01-01T00:00:00Z"),
		},
		{
			ID:           "user-3",
			Name:         "Priya Pending",
			Email:        "pending@example.com",
			PasswordHash: passwordHash,
			Role:         model.RoleSeller,
			SellerStatus: model.SellerStatusPending,
			IsActive:     true,
			CreatedAt:    at("2023-05-28T10:00:00Z"),
			UpdatedAt:    at("2023-05-28T10:00:00Z"),
		},
		{
			ID:           "user-4",
			Name:         "Rick Rejected",
			Email:        "rejected@example.com",
			PasswordHash: passwordHash,
			Role:         model.RoleSeller,
			SellerStatus: model.SellerStatusRejected,
			IsActive:     true,
			CreatedAt:    at("2023-06-10T10:00:00Z"),
			UpdatedAt:    at("2023-06-10T10:00:00Z"),
		},
		{
			ID:           "user-5",
			Name:         "Ben Banned",
			Email:        "banned@example.com",
			PasswordHash: passwordHash,
			Role:         model.RoleBuyer,
			IsActive:     false,
			CreatedAt:    at("2023-03-01T08:00:00Z"),
			UpdatedAt:    at("2023-03-01T08:00:00Z"),
		},
	}
}

// Products は初期商品。product-6 は下書き、product-7 と product-10 は未承認の出品者のもの。
func Products() []model.Product {
	return []model.Product{
		{
			ID:          "product-1",
			Title:       "Premium Wireless Headphones",
			Description: "Experience crystal clear sound with our premium wireless headphones. Features noise cancellation and 20-hour battery life.",
			Price:       decimal.RequireFromString("149.99"),
			ImageURL:    "https://images.pexels.com/photos/577769/pexels-photo-577769.jpeg",
			Category:    "Electronics",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       15,
			Rating:      4.7,
			Reviews:     124,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-03-10T11:45:22Z"),
			UpdatedAt:   at("2023-03-10T11:45:22Z"),
		},
		{
			ID:          "product-2",
			Title:       "Smart Fitness Watch",
			Description: "Track your fitness goals with this smart watch. Features heart rate monitoring, sleep tracking, and more.",
			Price:       decimal.RequireFromString("99.99"),
			ImageURL:    "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg",
			Category:    "Electronics",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       23,
			Rating:      4.5,
			Reviews:     89,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-03-15T14:30:10Z"),
			UpdatedAt:   at("2023-03-15T14:30:10Z"),
		},
		{
			ID:          "product-3",
			Title:       "Handcrafted Ceramic Vase",
			Description: "Stoneware vase glazed by hand. Each piece has a slightly different finish.",
			Price:       decimal.RequireFromString("39.99"),
			ImageURL:    "https://images.pexels.com/photos/1667071/pexels-photo-1667071.jpeg",
			Category:    "Home Decor",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       40,
			Rating:      4.8,
			Reviews:     52,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-04-02T09:12:00Z"),
			UpdatedAt:   at("2023-04-02T09:12:00Z"),
		},
		{
			ID:          "product-4",
			Title:       "Leather Crossbody Bag",
			Description: "Full grain leather bag with an adjustable strap and two inner pockets.",
			Price:       decimal.RequireFromString("79.50"),
			ImageURL:    "https://images.pexels.com/photos/1152077/pexels-photo-1152077.jpeg",
			Category:    "Fashion",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       12,
			Rating:      4.3,
			Reviews:     37,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-04-18T16:05:45Z"),
			UpdatedAt:   at("2023-04-18T16:05:45Z"),
		},
		{
			ID:          "product-5",
			Title:       "Mirrorless Camera Kit",
			Description: "24MP mirrorless body with a 18-55mm kit lens, battery and charger.",
			Price:       decimal.RequireFromString("899.00"),
			ImageURL:    "https://images.pexels.com/photos/90946/pexels-photo-90946.jpeg",
			Category:    "Photography",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       5,
			Rating:      4.9,
			Reviews:     18,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-05-01T10:00:00Z"),
			UpdatedAt:   at("2023-05-01T10:00:00Z"),
		},
		{
			ID:          "product-6",
			Title:       "Bamboo Desk Organizer",
			Description: "Five compartment organizer made from sustainable bamboo.",
			Price:       decimal.RequireFromString("24.99"),
			ImageURL:    "https://images.pexels.com/photos/6634170/pexels-photo-6634170.jpeg",
			Category:    "Home Decor",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       30,
			Status:      model.ProductStatusDraft,
			CreatedAt:   at("2023-05-20T08:30:00Z"),
			UpdatedAt:   at("2023-05-20T08:30:00Z"),
		},
		{
			ID:          "product-7",
			Title:       "Wireless Charging Pad",
			Description: "Slim 15W charging pad for phones and earbuds.",
			Price:       decimal.RequireFromString("29.99"),
			ImageURL:    "https://images.pexels.com/photos/4526407/pexels-photo-4526407.jpeg",
			Category:    "Electronics",
			SellerID:    "user-3",
			SellerName:  "Priya Pending",
			Stock:       50,
			Rating:      4.1,
			Reviews:     11,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-06-01T12:00:00Z"),
			UpdatedAt:   at("2023-06-01T12:00:00Z"),
		},
		{
			ID:          "product-8",
			Title:       "Solid Oak Side Table",
			Description: "Compact side table in oiled oak with a lower shelf.",
			Price:       decimal.RequireFromString("189.00"),
			ImageURL:    "https://images.pexels.com/photos/1866149/pexels-photo-1866149.jpeg",
			Category:    "Furniture",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       7,
			Rating:      4.6,
			Reviews:     21,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-02-25T10:00:00Z"),
			UpdatedAt:   at("2023-02-25T10:00:00Z"),
		},
		{
			ID:          "product-9",
			Title:       "Classic Novels Box Set",
			Description: "Six hardcover classics in a cloth slipcase.",
			Price:       decimal.RequireFromString("45.00"),
			ImageURL:    "https://images.pexels.com/photos/1290141/pexels-photo-1290141.jpeg",
			Category:    "Books",
			SellerID:    "user-1",
			SellerName:  "John Seller",
			Stock:       25,
			Rating:      4.4,
			Reviews:     64,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-02-10T09:00:00Z"),
			UpdatedAt:   at("2023-02-10T09:00:00Z"),
		},
		{
			ID:          "product-10",
			Title:       "Pro Yoga Mat",
			Description: "6mm non-slip mat with a carry strap.",
			Price:       decimal.RequireFromString("34.99"),
			ImageURL:    "https://images.pexels.com/photos/4056535/pexels-photo-4056535.jpeg",
			Category:    "Sports",
			SellerID:    "user-4",
			SellerName:  "Rick Rejected",
			Stock:       60,
			Rating:      4.2,
			Reviews:     40,
			Status:      model.ProductStatusPublished,
			CreatedAt:   at("2023-01-28T15:20:00Z"),
			UpdatedAt:   at("2023-01-28T15:20:00Z"),
		},
	}
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
