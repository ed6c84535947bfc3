package stealth

import (
	"fmt"
	"net/http"

	"github.com/lukman83/lcsc-scrap/internal/httputil"
	"golang.org/x/time/rate"
)

// Transport is an http.RoundTripper that applies the outbound pipeline:
// VendorHeaders → RobotsCheck → RateLimiter → Delay → Proxy → Send.
// Every stage except the headers is optional.
type Transport struct {
	Base        http.RoundTripper
	Headers     http.Header
	Robots      *RobotsChecker
	Proxy       *ProxyRotator
	Delay       *HumanDelay
	RateLimiter *rate.Limiter
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())

	headers := t.Headers
	if headers == nil {
		headers = httputil.VendorHeaders()
	}
	for key, vals := range headers {
		if req.Header.Get(key) == "" {
			req.Header[key] = append([]string(nil), vals...)
		}
	}

	if t.Robots != nil {
		allowed, err := t.Robots.IsAllowed(req.Context(), req.Header.Get("User-Agent"), req.URL.String())
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
		}
	}

	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if t.Delay != nil {
		if err := t.Delay.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
	}

	transport := t.Base
	if t.Proxy != nil {
		transport = t.Proxy.Next().Transport()
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	return transport.RoundTrip(req)
}
