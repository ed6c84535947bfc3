package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Catalog identifies a product category.
type Catalog struct {
	id   int
	name string
}

func NewCatalog(id int, name string) Catalog { return Catalog{id: id, name: name} }

func (c Catalog) ID() int      { return c.id }
func (c Catalog) Name() string { return c.name }

func (c Catalog) AsDict() map[string]any {
	return map[string]any{"id": c.id, "name": c.name}
}

// AsTuple returns (id, name).
func (c Catalog) AsTuple() []any { return []any{c.id, c.name} }

func (c Catalog) MarshalJSON() ([]byte, error) { return json.Marshal(c.AsDict()) }

// Brand identifies a manufacturer.
type Brand struct {
	id   int
	name string
}

func NewBrand(id int, name string) Brand { return Brand{id: id, name: name} }

func (b Brand) ID() int      { return b.id }
func (b Brand) Name() string { return b.name }

func (b Brand) AsDict() map[string]any {
	return map[string]any{"id": b.id, "name": b.name}
}

// AsTuple returns (id, name).
func (b Brand) AsTuple() []any { return []any{b.id, b.name} }

func (b Brand) MarshalJSON() ([]byte, error) { return json.Marshal(b.AsDict()) }

// Spec is one declared attribute of a product, e.g. Voltage / VOLT / 5V.
type Spec struct {
	name  string
	code  string
	value string
}

func NewSpec(name, code, value string) Spec { return Spec{name: name, code: code, value: value} }

func (s Spec) Name() string  { return s.name }
func (s Spec) Code() string  { return s.code }
func (s Spec) Value() string { return s.value }

func (s Spec) AsDict() map[string]any {
	return map[string]any{"name": s.name, "code": s.code, "value": s.value}
}

// AsTuple returns (name, code, value).
func (s Spec) AsTuple() []any { return []any{s.name, s.code, s.value} }

func (s Spec) MarshalJSON() ([]byte, error) { return json.Marshal(s.AsDict()) }

// PriceTier is the unit price that applies from Quantity upwards. Discount and
// DiscountPct are measured against the product's base tier.
type PriceTier struct {
	quantity    int
	price       decimal.Decimal
	discount    decimal.Decimal
	discountPct decimal.Decimal
}

func (t PriceTier) Quantity() int                { return t.quantity }
func (t PriceTier) Price() decimal.Decimal       { return t.price }
func (t PriceTier) Discount() decimal.Decimal    { return t.discount }
func (t PriceTier) DiscountPct() decimal.Decimal { return t.discountPct }

func (t PriceTier) AsDict() map[string]any {
	return map[string]any{
		"quantity":     t.quantity,
		"price":        t.price,
		"discount":     t.discount,
		"discount_pct": t.discountPct,
	}
}

// AsTuple returns (quantity, price, discount, discount_pct).
func (t PriceTier) AsTuple() []any {
	return []any{t.quantity, t.price, t.discount, t.discountPct}
}

func (t PriceTier) MarshalJSON() ([]byte, error) { return json.Marshal(t.AsDict()) }

// SearchResult is one ranked entry of a search response. Index is the
// 0-based position in the vendor response before filtering and sorting, and
// URL is the link the vendor supplied for this entry (not Product.URL).
type SearchResult struct {
	index      int
	url        string
	onDiscount bool
	product    *Product
}

func NewSearchResult(index int, url string, onDiscount bool, product *Product) SearchResult {
	return SearchResult{index: index, url: url, onDiscount: onDiscount, product: product}
}

func (r SearchResult) Index() int        { return r.index }
func (r SearchResult) URL() string       { return r.url }
func (r SearchResult) OnDiscount() bool  { return r.onDiscount }
func (r SearchResult) Product() *Product { return r.product }

func (r SearchResult) AsDict() map[string]any {
	return map[string]any{
		"index":           r.index,
		"product_url":     r.url,
		"on_discount":     r.onDiscount,
		"product_details": r.product.AsDict(),
	}
}

// AsTuple returns (index, product_url, on_discount, product tuple).
func (r SearchResult) AsTuple() []any {
	return []any{r.index, r.url, r.onDiscount, r.product.AsTuple()}
}

func (r SearchResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.AsDict()) }

// SearchResults is an ordered set of search results; the order is whatever
// sort was applied when it was assembled.
type SearchResults []SearchResult

func (rs SearchResults) AsDict() []map[string]any {
	out := make([]map[string]any, len(rs))
	for i, r := range rs {
		out[i] = r.AsDict()
	}
	return out
}

func (rs SearchResults) AsTuple() [][]any {
	out := make([][]any, len(rs))
	for i, r := range rs {
		out[i] = r.AsTuple()
	}
	return out
}

// Products returns the products in result order.
func (rs SearchResults) Products() []*Product {
	out := make([]*Product, len(rs))
	for i, r := range rs {
		out[i] = r.product
	}
	return out
}
