package lcsc

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/lukman83/lcsc-scrap/internal/models"
)

// SortKey selects the ordering of search results.
type SortKey string

const (
	// SortByStock orders by stock, highest first.
	SortByStock SortKey = "stock"
	// SortByPrice orders by base tier unit price, lowest first.
	SortByPrice SortKey = "price"
)

// DefaultMinStock is the stock floor applied by DefaultSearchOpts.
const DefaultMinStock = 500

// ParseSortKey accepts "stock" or "price" in any case. The empty string
// selects SortByStock.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByStock:
		return SortByStock, nil
	case SortByPrice:
		return SortByPrice, nil
	}
	return "", &InvalidSortKeyError{Key: s}
}

// SearchOpts controls filtering and ordering of search results.
type SearchOpts struct {
	// MinStock drops products with less stock. Nil disables the filter.
	MinStock *int
	SortBy   string
}

// DefaultSearchOpts keeps products with at least DefaultMinStock in stock and
// sorts by stock.
func DefaultSearchOpts() SearchOpts {
	return SearchOpts{MinStock: StockFloor(DefaultMinStock), SortBy: string(SortByStock)}
}

// StockFloor returns a pointer for SearchOpts.MinStock.
func StockFloor(n int) *int { return &n }

// AssembleSearchResults turns the records of one search response into
// results. Index is each record's position in the response; filtering does
// not renumber. Ties keep response order. The search-only url and isDiscount
// fields are read only for records that pass the stock filter.
func AssembleSearchResults(records []models.Record, opts SearchOpts) (models.SearchResults, error) {
	key, err := ParseSortKey(opts.SortBy)
	if err != nil {
		return nil, err
	}

	results := make(models.SearchResults, 0, len(records))
	for i, rec := range records {
		product, err := models.NewProduct(rec)
		if err != nil {
			return nil, fmt.Errorf("search result %d: %w", i, err)
		}
		if opts.MinStock != nil && product.Stock() < *opts.MinStock {
			continue
		}

		url, err := resultURL(i, rec)
		if err != nil {
			return nil, err
		}
		discount, ok := rec["isDiscount"]
		if !ok {
			return nil, &models.MissingFieldError{Field: fmt.Sprintf("productList[%d].isDiscount", i)}
		}
		results = append(results, models.NewSearchResult(i, url, models.Truthy(discount), product))
	}

	switch key {
	case SortByStock:
		slices.SortStableFunc(results, func(a, b models.SearchResult) int {
			return cmp.Compare(b.Product().Stock(), a.Product().Stock())
		})
	case SortByPrice:
		slices.SortStableFunc(results, func(a, b models.SearchResult) int {
			return a.Product().BaseTier().Price().Cmp(b.Product().BaseTier().Price())
		})
	}
	return results, nil
}

func resultURL(i int, rec models.Record) (string, error) {
	field := fmt.Sprintf("productList[%d].url", i)
	v, ok := rec["url"]
	if !ok {
		return "", &models.MissingFieldError{Field: field}
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	}
	return "", &models.TypeConversionError{Field: field, Value: v, Target: "string"}
}
