package stealth

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// ProxyProvider abstracts a proxy backend.
type ProxyProvider interface {
	Transport() http.RoundTripper
	Name() string
}

// ProxyRotator cycles through multiple proxy providers.
type ProxyRotator struct {
	providers []ProxyProvider
	mu        sync.Mutex
	idx       int
}

// NewProxyRotator creates a rotator from a list of providers.
// Returns nil if no providers are given.
func NewProxyRotator(providers []ProxyProvider) *ProxyRotator {
	if len(providers) == 0 {
		return nil
	}
	return &ProxyRotator{providers: providers}
}

// ParseProxyList builds a rotator from a comma-separated list of proxy URLs
// (http, https or socks5). Blank entries are skipped; an empty list yields a
// nil rotator.
func ParseProxyList(list string) (*ProxyRotator, error) {
	var providers []ProxyProvider
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %q: %w", raw, err)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, fmt.Errorf("proxy %q: unsupported scheme %q", raw, u.Scheme)
		}
		providers = append(providers, &HTTPProxyProvider{URL: u})
	}
	return NewProxyRotator(providers), nil
}

// Next returns the next proxy provider in round-robin order.
func (p *ProxyRotator) Next() ProxyProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	provider := p.providers[p.idx%len(p.providers)]
	p.idx++
	return provider
}

func (p *ProxyRotator) size() int { return len(p.providers) }

// HTTPProxyProvider routes through one HTTP or SOCKS5 proxy URL.
type HTTPProxyProvider struct {
	URL       *url.URL
	transport http.RoundTripper
	once      sync.Once
}

// Name is the proxy host; credentials are never included.
func (h *HTTPProxyProvider) Name() string { return h.URL.Host }

func (h *HTTPProxyProvider) Transport() http.RoundTripper {
	h.once.Do(func() {
		h.transport = &http.Transport{
			Proxy:             http.ProxyURL(h.URL),
			DisableKeepAlives: true,
		}
	})
	return h.transport
}
