package lcsc

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/lukman83/lcsc-scrap/internal/models"
)

// SearchPageSize is the fixed number of products requested per search.
// Only the first page is ever requested.
const SearchPageSize = 100

// Client issues product lookups and searches against the LCSC API. It is
// safe for concurrent use. Concurrent lookups of the same part number share
// one request; nothing is cached once it completes.
type Client struct {
	fetcher  Fetcher
	log      *zap.SugaredLogger
	inflight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient returns a Client that issues its requests through fetcher.
func NewClient(fetcher Fetcher, opts ...Option) *Client {
	c := &Client{fetcher: fetcher, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProduct looks up one product by its LCSC part number (e.g. C111887).
func (c *Client) FetchProduct(ctx context.Context, partNumber string) (*models.Product, error) {
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		return nil, errors.New("part number is required")
	}

	// The shared lookup must outlive any one caller; each caller still
	// stops waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(partNumber, func() (any, error) {
		return c.fetchProduct(shared, partNumber)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Product), nil
	}
}

func (c *Client) fetchProduct(ctx context.Context, partNumber string) (*models.Product, error) {
	reportProgress(ctx, "Fetching %s via %s...", partNumber, c.fetcher.Name())
	c.log.Debugw("fetch product", "part_number", partNumber, "fetcher", c.fetcher.Name())

	body, err := c.fetcher.Fetch(ctx, productDetailPath, url.Values{"productCode": {partNumber}})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch product %s", partNumber)
	}
	env, err := decodeEnvelope(productDetailPath, body)
	if err != nil {
		return nil, err
	}
	result, err := walk(env, "result")
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, &NotFoundError{PartNumber: partNumber}
	}
	rec, ok := asRecord(result)
	if !ok {
		return nil, &models.TypeConversionError{Field: "result", Value: result, Target: "object"}
	}

	product, err := models.NewProduct(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "product %s", partNumber)
	}
	c.log.Debugw("fetched product", "part_number", product.Code(), "stock", product.Stock())
	return product, nil
}

// Search runs a keyword search and assembles the first page of results.
// The sort key is validated before any request is made.
func (c *Client) Search(ctx context.Context, keyword string, opts SearchOpts) (models.SearchResults, error) {
	if _, err := ParseSortKey(opts.SortBy); err != nil {
		return nil, err
	}

	reportProgress(ctx, "Searching '%s' via %s...", keyword, c.fetcher.Name())
	c.log.Debugw("search", "keyword", keyword, "sort_by", opts.SortBy, "min_stock", opts.MinStock)

	params := url.Values{
		"keyword":     {keyword},
		"currentPage": {"1"},
		"pageSize":    {strconv.Itoa(SearchPageSize)},
		"searchType":  {"product"},
	}
	body, err := c.fetcher.Fetch(ctx, searchGlobalPath, params)
	if err != nil {
		return nil, errors.Wrapf(err, "search %q", keyword)
	}
	env, err := decodeEnvelope(searchGlobalPath, body)
	if err != nil {
		return nil, err
	}
	records, err := productList(env)
	if err != nil {
		return nil, err
	}

	results, err := AssembleSearchResults(records, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "search %q", keyword)
	}
	reportProgress(ctx, "Found %d of %d products", len(results), len(records))
	c.log.Debugw("search done", "keyword", keyword, "returned", len(records), "kept", len(results))
	return results, nil
}

// FetchProducts looks up several part numbers with at most maxConcurrent
// requests in flight. Products come back in the order of partNumbers; the
// first failure cancels the rest.
func (c *Client) FetchProducts(ctx context.Context, partNumbers []string, maxConcurrent int) ([]*models.Product, error) {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	products := make([]*models.Product, len(partNumbers))
	for i, pn := range partNumbers {
		g.Go(func() error {
			p, err := c.FetchProduct(ctx, pn)
			if err != nil {
				return err
			}
			products[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}
