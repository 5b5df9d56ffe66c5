package model

// 絞り込みなしを表すカテゴリ
const CategoryAll = "All"

// Categories は一覧画面のカテゴリ候補（先頭は All）。
var Categories = []string{
	CategoryAll,
	"Electronics",
	"Fashion",
	"Home Decor",
	"Furniture",
	"Photography",
	"Books",
	"Sports",
	"Toys",
	"Beauty",
}

// 商品に設定できるカテゴリか（All は不可）
func IsProductCategory(c string) bool {
	if c == CategoryAll {
		return false
	}
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
