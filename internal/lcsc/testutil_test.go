package lcsc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lukman83/lcsc-scrap/internal/models"
)

// productJSON returns a minimal valid productDetail object.
func productJSON(code string, stock int, basePrice string) map[string]any {
	return map[string]any{
		"productId":         json.Number("1"),
		"productCode":       code,
		"productModel":      "M-" + code,
		"title":             "Part " + code,
		"parentCatalogId":   json.Number("11"),
		"parentCatalogName": "Power Management ICs",
		"catalogId":         json.Number("1124"),
		"catalogName":       "Linear Voltage Regulators",
		"brandId":           json.Number("86"),
		"brandNameEn":       "STMicroelectronics",
		"split":             json.Number("1"),
		"minBuyNumber":      json.Number("1"),
		"isHot":             json.Number("0"),
		"stockNumber":       json.Number(fmt.Sprint(stock)),
		"productPriceList": []any{
			map[string]any{"ladder": json.Number("1"), "usdPrice": json.Number(basePrice)},
			map[string]any{"ladder": json.Number("100"), "usdPrice": json.Number("0.01")},
		},
		"productImages":  []any{},
		"pdfUrl":         "https://www.lcsc.com/datasheet/" + code + ".pdf",
		"productIntroEn": "test part",
		"paramVOList":    []any{},
	}
}

// searchItem extends productJSON with the fields only search results carry.
func searchItem(code string, stock int, basePrice string) map[string]any {
	item := productJSON(code, stock, basePrice)
	item["url"] = "https://www.lcsc.com/product-detail/x_" + code + ".html"
	item["isDiscount"] = false
	return item
}

func records(t *testing.T, items ...map[string]any) []models.Record {
	t.Helper()
	out := make([]models.Record, len(items))
	for i, item := range items {
		data, err := json.Marshal(item)
		require.NoError(t, err)
		out[i], err = models.DecodeRecord(data)
		require.NoError(t, err)
	}
	return out
}

func detailEnvelope(result any) map[string]any {
	return map[string]any{"code": 200, "msg": nil, "result": result}
}

func searchEnvelope(items ...map[string]any) map[string]any {
	list := make([]any, len(items))
	for i, item := range items {
		list[i] = item
	}
	return map[string]any{
		"code": 200,
		"result": map[string]any{
			"productSearchResultVO": map[string]any{"productList": list},
		},
	}
}

// fakeAPI serves canned JSON per API path and records the queries it saw.
type fakeAPI struct {
	mu         sync.Mutex
	queries    map[string][]url.Values
	userAgents []string
	routes     map[string]func(q url.Values) (int, any)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{
		queries: make(map[string][]url.Values),
		routes:  make(map[string]func(q url.Values) (int, any)),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.queries[r.URL.Path] = append(api.queries[r.URL.Path], r.URL.Query())
		api.userAgents = append(api.userAgents, r.UserAgent())
		route := api.routes[r.URL.Path]
		api.mu.Unlock()

		if route == nil {
			http.NotFound(w, r)
			return
		}
		status, body := route(r.URL.Query())
		w.WriteHeader(status)
		switch b := body.(type) {
		case string:
			w.Write([]byte(b))
		default:
			json.NewEncoder(w).Encode(b)
		}
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) handle(path string, fn func(q url.Values) (int, any)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[path] = fn
}

func (a *fakeAPI) calls(path string) []url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]url.Values(nil), a.queries[path]...)
}

func (a *fakeAPI) lastUserAgent() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.userAgents) == 0 {
		return ""
	}
	return a.userAgents[len(a.userAgents)-1]
}

func testClient(srv *httptest.Server) *Client {
	return NewClient(NewHTTPFetcher(srv.Client(), srv.URL+"/ftps/wm"))
}
