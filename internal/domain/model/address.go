package model

// 配送先住所。チェックアウト中だけ保持する。
type Address struct {
	FullName   string `json:"full_name" validate:"required,max=100"`
	Street     string `json:"street" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,max=30"`
}

// 国の初期値
const DefaultCountry = "United States"
