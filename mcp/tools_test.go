package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lukman83/lcsc-scrap/internal/lcsc"
	"github.com/lukman83/lcsc-scrap/internal/models"
)

const testProduct = `{
	"productId": 1, "productCode": "C111887", "productModel": "L7805CV", "title": "ST L7805CV",
	"parentCatalogId": 11, "parentCatalogName": "Power Management ICs",
	"catalogId": 1124, "catalogName": "Linear Voltage Regulators",
	"brandId": 86, "brandNameEn": "STMicroelectronics",
	"split": 5, "minBuyNumber": 5, "isHot": 0, "stockNumber": 12500,
	"productPriceList": [{"ladder": 5, "usdPrice": 0.2832}, {"ladder": 50, "usdPrice": 0.2233}],
	"productImages": [], "pdfUrl": "", "productIntroEn": "", "paramVOList": []
}`

type fakeCatalog struct {
	product  *models.Product
	err      error
	lastOpts lcsc.SearchOpts
}

func (f *fakeCatalog) FetchProduct(ctx context.Context, pn string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeCatalog) Search(ctx context.Context, keyword string, opts lcsc.SearchOpts) (models.SearchResults, error) {
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return models.SearchResults{models.NewSearchResult(3, "https://example.com/p", true, f.product)}, nil
}

func (f *fakeCatalog) QuoteOrder(ctx context.Context, pn string, quantity int) (lcsc.Quote, error) {
	if f.err != nil {
		return lcsc.Quote{}, f.err
	}
	return lcsc.NewQuote(f.product, quantity)
}

func newTestTools(t *testing.T) (*tools, *fakeCatalog) {
	t.Helper()
	rec, err := models.DecodeRecord([]byte(testProduct))
	require.NoError(t, err)
	p, err := models.NewProduct(rec)
	require.NoError(t, err)

	fake := &fakeCatalog{product: p}
	return &tools{catalog: fake, defaults: lcsc.DefaultSearchOpts(), log: zap.NewNop().Sugar()}, fake
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestProductDetailTool(t *testing.T) {
	tl, _ := newTestTools(t)

	res, err := tl.handleProductDetail(context.Background(), call(map[string]any{"part_number": "C111887"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "C111887", out["product_code"])

	res, err = tl.handleProductDetail(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestProductDetailToolError(t *testing.T) {
	tl, fake := newTestTools(t)
	fake.err = &lcsc.NotFoundError{PartNumber: "C0"}

	res, err := tl.handleProductDetail(context.Background(), call(map[string]any{"part_number": "C0"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "C0")
}

func TestSearchProductsToolOptions(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantFloor *int
		wantSort  string
	}{
		{"defaults", map[string]any{"keyword": "lm358"}, lcsc.StockFloor(500), "stock"},
		{"explicit floor", map[string]any{"keyword": "lm358", "min_stock": float64(20)}, lcsc.StockFloor(20), "stock"},
		{"no filter", map[string]any{"keyword": "lm358", "no_stock_filter": true}, nil, "stock"},
		{"price sort", map[string]any{"keyword": "lm358", "sort_by": "price"}, lcsc.StockFloor(500), "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, fake := newTestTools(t)

			res, err := tl.handleSearchProducts(context.Background(), call(tt.args))
			require.NoError(t, err)
			require.False(t, res.IsError)
			assert.Equal(t, tt.wantFloor, fake.lastOpts.MinStock)
			assert.Equal(t, tt.wantSort, fake.lastOpts.SortBy)
		})
	}
}

func TestSearchProductsToolOutput(t *testing.T) {
	tl, _ := newTestTools(t)

	res, err := tl.handleSearchProducts(context.Background(), call(map[string]any{"keyword": "lm358"}))
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	require.Len(t, out, 1)
	assert.Equal(t, float64(3), out[0]["index"])
	assert.Equal(t, "https://example.com/p", out[0]["product_url"])
	assert.Equal(t, true, out[0]["on_discount"])
}

func TestSearchProductsToolError(t *testing.T) {
	tl, fake := newTestTools(t)
	fake.err = &lcsc.InvalidSortKeyError{Key: "popularity"}

	res, err := tl.handleSearchProducts(context.Background(), call(map[string]any{"keyword": "x", "sort_by": "popularity"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tl.handleSearchProducts(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestOrderCostTool(t *testing.T) {
	tl, _ := newTestTools(t)

	res, err := tl.handleOrderCost(context.Background(), call(map[string]any{"part_number": "C111887", "quantity": float64(50)}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "11.165", out["total"])
	assert.Equal(t, float64(50), out["tier_quantity"])

	for _, qty := range []float64{0, 3, 12} {
		t.Run(fmt.Sprint(qty), func(t *testing.T) {
			res, err := tl.handleOrderCost(context.Background(), call(map[string]any{"part_number": "C111887", "quantity": qty}))
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}
