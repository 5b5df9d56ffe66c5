// Package catalogquery は商品一覧の絞り込み・並び替えと、
// その条件のクエリ文字列への反映を扱う。
package catalogquery

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceLow  Sort = "priceLow"
	SortPriceHigh Sort = "priceHigh"
	SortPopular   Sort = "popular"
)

func (s Sort) Valid() bool {
	switch s {
	case SortNewest, SortPriceLow, SortPriceHigh, SortPopular:
		return true
	}
	return false
}

var (
	ErrInvalidSort  = errors.New("invalid sort")
	ErrInvalidPrice = errors.New("invalid price range")
)

// 価格帯の初期値
var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(500)
)

// Params は一覧の条件。
type Params struct {
	Category string          `schema:"category"`
	Sort     Sort            `schema:"sort"`
	Search   string          `schema:"search"`
	MinPrice decimal.Decimal `schema:"min_price"`
	MaxPrice decimal.Decimal `schema:"max_price"`
}

// 共有用に URL へ出す項目（初期値は空にして省く）
type shareable struct {
	Category string `schema:"category,omitempty"`
	Sort     string `schema:"sort,omitempty"`
	Search   string `schema:"search,omitempty"`
}

var (
	decoder = newDecoder()
	encoder = schema.NewEncoder()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(decimal.Decimal{}, func(s string) reflect.Value {
		v, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(v)
	})
	return d
}

// Defaults は All / newest / 検索なし / 0〜500。
func Defaults() Params {
	return Params{
		Category: model.CategoryAll,
		Sort:     SortNewest,
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
	}
}

// Parse はクエリ文字列から条件を読む。無い項目は初期値のまま。
func Parse(values url.Values) (Params, error) {
	p := Defaults()
	if err := decoder.Decode(&p, values); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}

	p.Search = strings.TrimSpace(p.Search)
	if p.Category == "" {
		p.Category = model.CategoryAll
	}
	if p.Sort == "" {
		p.Sort = SortNewest
	}
	if !p.Sort.Valid() {
		return Params{}, ErrInvalidSort
	}
	if p.MinPrice.IsNegative() || p.MaxPrice.IsNegative() || p.MinPrice.GreaterThan(p.MaxPrice) {
		return Params{}, ErrInvalidPrice
	}
	return p, nil
}

// Values は共有用のクエリ。category / sort / search の初期値でないものだけ出す。
// 価格帯は URL に載せない。
func (p Params) Values() url.Values {
	s := shareable{Category: p.Category, Sort: string(p.Sort), Search: p.Search}
	if s.Category == model.CategoryAll {
		s.Category = ""
	}
	if p.Sort == SortNewest {
		s.Sort = ""
	}

	values := url.Values{}
	if err := encoder.Encode(s, values); err != nil {
		// 文字列だけなので失敗しない
		return url.Values{}
	}
	return values
}

func (p Params) QueryString() string {
	return p.Values().Encode()
}
