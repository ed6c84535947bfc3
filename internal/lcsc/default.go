package lcsc

import (
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lukman83/lcsc-scrap/config"
	"github.com/lukman83/lcsc-scrap/internal/httputil"
	"github.com/lukman83/lcsc-scrap/internal/stealth"
)

// BuildHTTPClient creates the HTTP client for cfg: vendor headers plus the
// optional robots, rate limit, delay and proxy stages.
func BuildHTTPClient(cfg *config.Config) (*http.Client, error) {
	profile, err := stealth.ParseDelayProfile(cfg.DelayProfile)
	if err != nil {
		return nil, err
	}
	proxies, err := stealth.ParseProxyList(cfg.Proxies)
	if err != nil {
		return nil, err
	}

	var robots *stealth.RobotsChecker
	if cfg.RespectRobots {
		robots = stealth.NewRobotsChecker(httputil.NewHTTPClient(nil))
	}
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	}

	transport := &stealth.Transport{
		Base:        httputil.NewBaseTransport(),
		Headers:     httputil.VendorHeaders(),
		Robots:      robots,
		Proxy:       proxies,
		Delay:       stealth.NewHumanDelay(profile),
		RateLimiter: limiter,
	}
	return httputil.NewHTTPClient(transport), nil
}

// NewFromConfig builds a Client with the fetcher selected by cfg.Fetcher.
func NewFromConfig(cfg *config.Config, log *zap.SugaredLogger) (*Client, error) {
	var fetcher Fetcher
	switch cfg.Fetcher {
	case "browser":
		fetcher = NewBrowserFetcher(cfg.BaseURL, cfg.BrowserBin)
	default:
		client, err := BuildHTTPClient(cfg)
		if err != nil {
			return nil, err
		}
		fetcher = NewHTTPFetcher(client, cfg.BaseURL)
	}
	return NewClient(fetcher, WithLogger(log)), nil
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns a process-wide client configured from the environment,
// built on first use. Prefer passing a *Client explicitly; this exists for
// one-off scripts.
func Default() (*Client, error) {
	defaultOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			defaultErr = err
			return
		}
		defaultClient, defaultErr = NewFromConfig(cfg, nil)
	})
	return defaultClient, defaultErr
}
