package stealth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lukman83/lcsc-scrap/internal/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestTransportAppliesVendorHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Transport{Base: http.DefaultTransport}}
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/ftps/wm/product/detail", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "de-DE")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, httputil.VendorUserAgent, got.Get("User-Agent"))
	assert.Equal(t, "application/json, text/plain, */*", got.Get("Accept"))
	assert.Equal(t, "de-DE", got.Get("Accept-Language"), "caller headers win")
	assert.Empty(t, req.Header.Get("User-Agent"), "caller request is not mutated")
}

func TestTransportRespectsRobots(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits++ })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &http.Client{Transport: &Transport{
		Base:   http.DefaultTransport,
		Robots: NewRobotsChecker(srv.Client()),
	}}

	resp, err := client.Get(srv.URL + "/public/page")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 1, hits)

	_, err = client.Get(srv.URL + "/private/page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "robots.txt")
	assert.Equal(t, 1, hits)
}

func TestRobotsUnreachableAllows(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	allowed, err := NewRobotsChecker(&http.Client{Timeout: time.Second}).IsAllowed(context.Background(), httputil.VendorUserAgent, addr+"/x")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestTransportRateLimiterHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	client := &http.Client{Transport: &Transport{Base: http.DefaultTransport, RateLimiter: limiter}}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	_, err = client.Do(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}

func TestParseDelayProfile(t *testing.T) {
	for _, s := range []string{"", "off", "aggressive", "normal", "cautious"} {
		p, err := ParseDelayProfile(s)
		require.NoError(t, err, s)
		if s == "" || s == "off" {
			assert.Nil(t, NewHumanDelay(p))
		} else {
			d := NewHumanDelay(p)
			require.NotNil(t, d)
			for range 20 {
				n := d.Next()
				assert.GreaterOrEqual(t, n, d.MinDelay)
				assert.Less(t, n, d.MaxDelay)
			}
		}
	}
	_, err := ParseDelayProfile("turbo")
	assert.Error(t, err)
}

func TestParseProxyList(t *testing.T) {
	rot, err := ParseProxyList("")
	require.NoError(t, err)
	assert.Nil(t, rot)

	rot, err = ParseProxyList("http://user:pw@proxy-a:8080, socks5://proxy-b:1080 ,")
	require.NoError(t, err)
	require.NotNil(t, rot)
	assert.Equal(t, 2, rot.size())
	assert.Equal(t, "proxy-a:8080", rot.Next().Name())
	assert.Equal(t, "proxy-b:1080", rot.Next().Name())
	assert.Equal(t, "proxy-a:8080", rot.Next().Name())

	_, err = ParseProxyList("ftp://proxy-c:21")
	assert.Error(t, err)
}
