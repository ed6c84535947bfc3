package lcsc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/lukman83/lcsc-scrap/internal/httputil"
)

const browserTimeout = 30 * time.Second

// BrowserFetcher loads the API URL in headless Chrome and returns the JSON
// text the browser renders. It exists for networks where the API rejects
// plain HTTP clients; each Fetch launches and tears down its own browser.
type BrowserFetcher struct {
	baseURL string
	bin     string
}

// NewBrowserFetcher uses the Chrome binary at bin, or lets rod locate or
// download one when bin is empty.
func NewBrowserFetcher(baseURL, bin string) *BrowserFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &BrowserFetcher{baseURL: baseURL, bin: bin}
}

func (b *BrowserFetcher) Name() string { return "browser" }

func (b *BrowserFetcher) Fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := endpointURL(b.baseURL, path, params)
	fail := func(err error) error {
		return &httputil.TransportError{Method: http.MethodGet, URL: endpoint, Err: err}
	}

	l := launcher.New().Headless(true).Logger(io.Discard)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fail(fmt.Errorf("launch browser: %w", err))
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fail(fmt.Errorf("connect browser: %w", err))
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fail(fmt.Errorf("open page: %w", err))
	}
	err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      httputil.VendorUserAgent,
		AcceptLanguage: "en-US,en;q=0.9",
	})
	if err != nil {
		return nil, fail(fmt.Errorf("set user agent: %w", err))
	}

	timed := page.Timeout(browserTimeout)
	if err := timed.Navigate(endpoint); err != nil {
		return nil, fail(fmt.Errorf("navigate: %w", err))
	}
	if err := timed.WaitLoad(); err != nil {
		return nil, fail(fmt.Errorf("wait load: %w", err))
	}

	res, err := timed.Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return nil, fail(fmt.Errorf("read body: %w", err))
	}
	text := res.Value.Str()
	if text == "" {
		return nil, fail(errors.New("empty page body"))
	}
	return []byte(text), nil
}
