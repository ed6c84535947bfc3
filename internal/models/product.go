package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const productURLFormat = "https://www.lcsc.com/product-detail/%s.html"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Product is one LCSC catalogue item. It is built once from a raw vendor
// record by NewProduct and never changes afterwards.
//
// Identity is the product code alone: two Products with the same Code are
// Equal even if their stock or prices differ. Key products in maps and sets
// with ProductKey, never with the pointer or the struct value.
type Product struct {
	id            int
	code          string
	url           string
	model         string
	title         string
	parentCatalog Catalog
	catalog       Catalog
	brand         Brand
	splitQuantity int
	minQuantity   int
	isHot         bool
	stock         int
	price         []PriceTier
	imageURLs     []string
	datasheetURL  string
	description   string
	specs         []Spec
	raw           Record
}

// productInvariants mirrors the constrained fields of a mapped product.
type productInvariants struct {
	Code          string `validate:"required"`
	SplitQuantity int    `validate:"gte=1"`
	MinQuantity   int    `validate:"gte=1"`
	Stock         int    `validate:"gte=0"`
	Tiers         int    `validate:"gte=1"`
}

// NewProduct maps a raw productDetail record onto a Product. It returns a
// *MissingFieldError for an absent key, a *TypeConversionError for a value of
// the wrong shape, a *PriceLadderError for a malformed price list and an
// *InvariantError for out-of-range quantities.
func NewProduct(raw Record) (*Product, error) {
	var (
		p   = &Product{raw: maps.Clone(raw)}
		err error
	)

	ints := []struct {
		key string
		dst *int
	}{
		{"productId", &p.id},
		{"split", &p.splitQuantity},
		{"minBuyNumber", &p.minQuantity},
		{"stockNumber", &p.stock},
	}
	strs := []struct {
		key string
		dst *string
	}{
		{"productCode", &p.code},
		{"productModel", &p.model},
		{"title", &p.title},
		{"pdfUrl", &p.datasheetURL},
		{"productIntroEn", &p.description},
	}
	for _, f := range ints {
		if *f.dst, err = raw.intField("", f.key); err != nil {
			return nil, err
		}
	}
	for _, f := range strs {
		if *f.dst, err = raw.stringField("", f.key); err != nil {
			return nil, err
		}
	}
	p.url = productURL(p.code)

	if p.parentCatalog, err = catalogFrom(raw, "parentCatalogId", "parentCatalogName"); err != nil {
		return nil, err
	}
	if p.catalog, err = catalogFrom(raw, "catalogId", "catalogName"); err != nil {
		return nil, err
	}
	brandID, err := raw.intField("", "brandId")
	if err != nil {
		return nil, err
	}
	brandName, err := raw.stringField("", "brandNameEn")
	if err != nil {
		return nil, err
	}
	p.brand = NewBrand(brandID, brandName)

	if p.isHot, err = raw.boolField("", "isHot"); err != nil {
		return nil, err
	}

	priceList, err := raw.listField("", "productPriceList")
	if err != nil {
		return nil, err
	}
	if p.price, err = buildPriceLadder("productPriceList", priceList); err != nil {
		return nil, err
	}

	images, err := raw.listField("", "productImages")
	if err != nil {
		return nil, err
	}
	p.imageURLs = make([]string, 0, len(images))
	for i, img := range images {
		s, err := toString(indexPath("productImages", i), img)
		if err != nil {
			return nil, err
		}
		p.imageURLs = append(p.imageURLs, s)
	}

	params, err := raw.listField("", "paramVOList")
	if err != nil {
		return nil, err
	}
	if p.specs, err = specsFrom(params); err != nil {
		return nil, err
	}

	if err := p.checkInvariants(); err != nil {
		return nil, err
	}
	return p, nil
}

func catalogFrom(raw Record, idKey, nameKey string) (Catalog, error) {
	id, err := raw.intField("", idKey)
	if err != nil {
		return Catalog{}, err
	}
	name, err := raw.stringField("", nameKey)
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(id, name), nil
}

func specsFrom(params []any) ([]Spec, error) {
	specs := make([]Spec, 0, len(params))
	for i, item := range params {
		path := indexPath("paramVOList", i)
		entry, err := toRecord(path, item)
		if err != nil {
			return nil, err
		}
		var name, code, value string
		if name, err = entry.stringField(path, "paramNameEn"); err != nil {
			return nil, err
		}
		if code, err = entry.stringField(path, "paramCode"); err != nil {
			return nil, err
		}
		if value, err = entry.stringField(path, "paramValueEn"); err != nil {
			return nil, err
		}
		specs = append(specs, NewSpec(name, code, value))
	}
	return specs, nil
}

func (p *Product) checkInvariants() error {
	err := validate.Struct(productInvariants{
		Code:          p.code,
		SplitQuantity: p.splitQuantity,
		MinQuantity:   p.minQuantity,
		Stock:         p.stock,
		Tiers:         len(p.price),
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		rule := fe.ActualTag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return &InvariantError{Field: fe.Field(), Rule: rule, Value: fe.Value()}
	}
	return err
}

func productURL(code string) string {
	return fmt.Sprintf(productURLFormat, code)
}

func (p *Product) ID() int                { return p.id }
func (p *Product) Code() string           { return p.code }
func (p *Product) URL() string            { return p.url }
func (p *Product) Model() string          { return p.model }
func (p *Product) Title() string          { return p.title }
func (p *Product) ParentCatalog() Catalog { return p.parentCatalog }
func (p *Product) Catalog() Catalog       { return p.catalog }
func (p *Product) Brand() Brand           { return p.brand }
func (p *Product) SplitQuantity() int     { return p.splitQuantity }
func (p *Product) MinQuantity() int       { return p.minQuantity }
func (p *Product) IsHot() bool            { return p.isHot }
func (p *Product) Stock() int             { return p.stock }
func (p *Product) DatasheetURL() string   { return p.datasheetURL }
func (p *Product) Description() string    { return p.description }

// Tiers returns the price tiers in ascending threshold order.
func (p *Product) Tiers() []PriceTier { return slices.Clone(p.price) }

// Price returns the tiers keyed by their quantity threshold.
func (p *Product) Price() map[int]PriceTier {
	m := make(map[int]PriceTier, len(p.price))
	for _, t := range p.price {
		m[t.quantity] = t
	}
	return m
}

func (p *Product) ImageURLs() []string { return slices.Clone(p.imageURLs) }
func (p *Product) Specs() []Spec       { return slices.Clone(p.specs) }

// Raw returns a shallow copy of the record the product was built from.
func (p *Product) Raw() Record { return maps.Clone(p.raw) }

// Key returns the identity of the product, its LCSC part number.
func (p *Product) Key() string { return p.code }

// Equal reports whether p and other are the same catalogue item. Only the
// product code is compared.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.code == other.code
}

// ProductKey is the key-extraction function for product maps and sets.
func ProductKey(p *Product) string { return p.Key() }

// IndexByKey indexes products by ProductKey. A later product replaces an
// earlier one with the same code.
func IndexByKey(products []*Product) map[string]*Product {
	idx := make(map[string]*Product, len(products))
	for _, p := range products {
		idx[ProductKey(p)] = p
	}
	return idx
}

// AsDict returns the product as a JSON-viewable map. The "price" entry maps
// each quantity threshold to its tier.
func (p *Product) AsDict() map[string]any {
	price := make(map[int]map[string]any, len(p.price))
	for _, t := range p.price {
		price[t.quantity] = t.AsDict()
	}
	specs := make([]map[string]any, len(p.specs))
	for i, s := range p.specs {
		specs[i] = s.AsDict()
	}
	return map[string]any{
		"product_id":     p.id,
		"product_code":   p.code,
		"product_url":    p.url,
		"product_model":  p.model,
		"product_title":  p.title,
		"parent_catalog": p.parentCatalog.AsDict(),
		"catalog":        p.catalog.AsDict(),
		"brand":          p.brand.AsDict(),
		"split_quantity": p.splitQuantity,
		"min_quantity":   p.minQuantity,
		"is_hot":         p.isHot,
		"stock":          p.stock,
		"price":          price,
		"image_urls":     slices.Clone(p.imageURLs),
		"datasheet_url":  p.datasheetURL,
		"description":    p.description,
		"specs":          specs,
	}
}

// AsTuple returns the product fields in this order: id, code, url, model,
// title, parent catalog, catalog, brand, split quantity, min quantity, is hot,
// stock, price tiers as (quantity, tier) pairs, image urls, datasheet url,
// description, specs.
func (p *Product) AsTuple() []any {
	price := make([]any, len(p.price))
	for i, t := range p.price {
		price[i] = []any{t.quantity, t.AsTuple()}
	}
	images := make([]any, len(p.imageURLs))
	for i, u := range p.imageURLs {
		images[i] = u
	}
	specs := make([]any, len(p.specs))
	for i, s := range p.specs {
		specs[i] = s.AsTuple()
	}
	return []any{
		p.id,
		p.code,
		p.url,
		p.model,
		p.title,
		p.parentCatalog.AsTuple(),
		p.catalog.AsTuple(),
		p.brand.AsTuple(),
		p.splitQuantity,
		p.minQuantity,
		p.isHot,
		p.stock,
		price,
		images,
		p.datasheetURL,
		p.description,
		specs,
	}
}

func (p *Product) MarshalJSON() ([]byte, error) { return json.Marshal(p.AsDict()) }

// Record rebuilds a vendor-shaped record from the product. NewProduct(p.Record())
// yields a product with the same field values.
func (p *Product) Record() Record {
	prices := make([]any, len(p.price))
	for i, t := range p.price {
		prices[i] = map[string]any{
			"ladder":   json.Number(strconv.Itoa(t.quantity)),
			"usdPrice": json.Number(t.price.String()),
		}
	}
	images := make([]any, len(p.imageURLs))
	for i, u := range p.imageURLs {
		images[i] = u
	}
	params := make([]any, len(p.specs))
	for i, s := range p.specs {
		params[i] = map[string]any{
			"paramNameEn":  s.name,
			"paramCode":    s.code,
			"paramValueEn": s.value,
		}
	}
	return Record{
		"productId":         json.Number(strconv.Itoa(p.id)),
		"productCode":       p.code,
		"productModel":      p.model,
		"title":             p.title,
		"parentCatalogId":   json.Number(strconv.Itoa(p.parentCatalog.id)),
		"parentCatalogName": p.parentCatalog.name,
		"catalogId":         json.Number(strconv.Itoa(p.catalog.id)),
		"catalogName":       p.catalog.name,
		"brandId":           json.Number(strconv.Itoa(p.brand.id)),
		"brandNameEn":       p.brand.name,
		"split":             json.Number(strconv.Itoa(p.splitQuantity)),
		"minBuyNumber":      json.Number(strconv.Itoa(p.minQuantity)),
		"isHot":             p.isHot,
		"stockNumber":       json.Number(strconv.Itoa(p.stock)),
		"productPriceList":  prices,
		"productImages":     images,
		"pdfUrl":            p.datasheetURL,
		"productIntroEn":    p.description,
		"paramVOList":       params,
	}
}
