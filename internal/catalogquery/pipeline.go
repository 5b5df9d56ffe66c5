package catalogquery

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"storefront/internal/domain/model"
)

// Apply はカテゴリ→検索→価格帯→並び替えの順に適用する。入力は変更しない。
func Apply(products []model.Product, p Params) []model.Product {
	fold := cases.Fold()
	term := fold.String(p.Search)

	out := make([]model.Product, 0, len(products))
	for _, prod := range products {
		if p.Category != "" && p.Category != model.CategoryAll && prod.Category != p.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(fold.String(prod.Title), term) &&
			!strings.Contains(fold.String(prod.Description), term) {
			continue
		}
		if prod.Price.LessThan(p.MinPrice) || prod.Price.GreaterThan(p.MaxPrice) {
			continue
		}
		out = append(out, prod)
	}

	slices.SortStableFunc(out, comparator(p.Sort))
	return out
}

func comparator(s Sort) func(a, b model.Product) int {
	switch s {
	case SortPriceLow:
		return func(a, b model.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceHigh:
		return func(a, b model.Product) int { return b.Price.Cmp(a.Price) }
	case SortPopular:
		return func(a, b model.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return func(a, b model.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}

// Related は同じカテゴリの他の商品を先頭から limit 件。
func Related(products []model.Product, of model.Product, limit int) []model.Product {
	out := []model.Product{}
	for _, p := range products {
		if len(out) >= limit {
			break
		}
		if p.ID != of.ID && p.Category == of.Category {
			out = append(out, p)
		}
	}
	return out
}
