package lcsc

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/lukman83/lcsc-scrap/internal/httputil"
)

// DefaultBaseURL is the root of the LCSC web API.
const DefaultBaseURL = "https://wmsc.lcsc.com/ftps/wm"

const (
	productDetailPath = "product/detail"
	searchGlobalPath  = "search/global"
)

// Fetcher performs one GET against an API path and returns the raw body.
// Failures to obtain a body are reported as *httputil.TransportError.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, path string, params url.Values) ([]byte, error)
}

// HTTPFetcher calls the API directly with net/http.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
}

func NewHTTPFetcher(client *http.Client, baseURL string) *HTTPFetcher {
	if client == nil {
		client = httputil.NewHTTPClient(nil)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPFetcher{client: client, baseURL: baseURL}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) Fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := endpointURL(f.baseURL, path, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &httputil.TransportError{Method: http.MethodGet, URL: endpoint, Err: err}
	}
	httputil.ApplyHeaders(req, httputil.VendorHeaders())
	return httputil.Do(f.client, req)
}

func endpointURL(baseURL, path string, params url.Values) string {
	u := strings.TrimRight(baseURL, "/") + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}
