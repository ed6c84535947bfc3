package httputil

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

// TransportError wraps any failure to obtain a usable response: a network
// error or a non-2xx status. Body holds a short prefix of the error body.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request failed: %s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request failed: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

const errorBodyLimit = 512

// NewHTTPClient creates an HTTP client with sensible defaults.
// An optional RoundTripper (e.g. stealth.Transport) can be injected.
func NewHTTPClient(transport http.RoundTripper) *http.Client {
	if transport == nil {
		transport = NewBaseTransport()
	}
	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}

// NewBaseTransport returns the pooled transport used under every wrapper.
func NewBaseTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// Do sends req exactly once and returns the decoded body of a 2xx response.
// Every failure comes back as a *TransportError.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	fail := func(status int, body []byte, err error) *TransportError {
		if len(body) > errorBodyLimit {
			body = body[:errorBodyLimit]
		}
		return &TransportError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: status,
			Body:       string(body),
			Err:        err,
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fail(0, nil, err)
	}
	defer resp.Body.Close()

	body, err := ReadBody(resp)
	if err != nil {
		return nil, fail(0, nil, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fail(resp.StatusCode, body, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return body, nil
}

// ReadBody reads and decompresses an HTTP response body. The Go transport
// only decodes gzip it asked for itself, so explicit Accept-Encoding values
// and brotli are handled here.
func ReadBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	default:
		reader = resp.Body
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
