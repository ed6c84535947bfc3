package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/lukman83/lcsc-scrap/internal/lcsc"
	"github.com/lukman83/lcsc-scrap/internal/models"
)

// Catalog is the part of the LCSC client the tools need.
type Catalog interface {
	FetchProduct(ctx context.Context, partNumber string) (*models.Product, error)
	Search(ctx context.Context, keyword string, opts lcsc.SearchOpts) (models.SearchResults, error)
	QuoteOrder(ctx context.Context, partNumber string, quantity int) (lcsc.Quote, error)
}

type tools struct {
	catalog  Catalog
	defaults lcsc.SearchOpts
	log      *zap.SugaredLogger
}

func registerTools(s *server.MCPServer, t *tools) {
	detailTool := mcp.NewTool("product_detail",
		mcp.WithDescription("Get full product details, price tiers and specs for an LCSC part number"),
		mcp.WithString("part_number",
			mcp.Required(),
			mcp.Description("LCSC part number, e.g. C111887"),
		),
	)
	s.AddTool(detailTool, t.handleProductDetail)

	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search LCSC products by keyword. Returns the first page of matches, filtered by stock and sorted"),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Search keyword or manufacturer part number"),
		),
		mcp.WithNumber("min_stock",
			mcp.Description(fmt.Sprintf("Drop products with less stock (default: %d)", lcsc.DefaultMinStock)),
		),
		mcp.WithBoolean("no_stock_filter",
			mcp.Description("Return products regardless of stock"),
		),
		mcp.WithString("sort_by",
			mcp.Description("Sort order: stock (highest first) or price (cheapest first)"),
			mcp.Enum("stock", "price"),
		),
	)
	s.AddTool(searchTool, t.handleSearchProducts)

	costTool := mcp.NewTool("order_cost",
		mcp.WithDescription("Price an order of a given quantity using the product's tiered pricing"),
		mcp.WithString("part_number",
			mcp.Required(),
			mcp.Description("LCSC part number"),
		),
		mcp.WithNumber("quantity",
			mcp.Required(),
			mcp.Description("Units to order; must respect the minimum and multiple"),
		),
	)
	s.AddTool(costTool, t.handleOrderCost)
}

func (t *tools) handleProductDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pn := request.GetString("part_number", "")
	if pn == "" {
		return mcp.NewToolResultError("part_number is required"), nil
	}

	product, err := t.catalog.FetchProduct(ctx, pn)
	if err != nil {
		t.log.Warnw("product_detail failed", "part_number", pn, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("detail error: %v", err)), nil
	}
	return jsonResult(product)
}

func (t *tools) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := request.GetString("keyword", "")
	if keyword == "" {
		return mcp.NewToolResultError("keyword is required"), nil
	}

	opts := t.defaults
	if _, ok := request.GetArguments()["min_stock"]; ok {
		opts.MinStock = lcsc.StockFloor(request.GetInt("min_stock", lcsc.DefaultMinStock))
	}
	if request.GetBool("no_stock_filter", false) {
		opts.MinStock = nil
	}
	opts.SortBy = request.GetString("sort_by", opts.SortBy)

	results, err := t.catalog.Search(ctx, keyword, opts)
	if err != nil {
		t.log.Warnw("search_products failed", "keyword", keyword, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}
	return jsonResult(results)
}

func (t *tools) handleOrderCost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pn := request.GetString("part_number", "")
	if pn == "" {
		return mcp.NewToolResultError("part_number is required"), nil
	}
	quantity := request.GetInt("quantity", 0)

	quote, err := t.catalog.QuoteOrder(ctx, pn, quantity)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cost error: %v", err)), nil
	}
	return jsonResult(quote)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
