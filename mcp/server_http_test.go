package mcp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initializeBody = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`

func postMCP(t *testing.T, h http.Handler, auth string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(initializeBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	tl, _ := newTestTools(t)
	h := NewHTTPHandler(tl.catalog, Options{APIKey: "secret"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMCPEndpointAuth(t *testing.T) {
	tl, _ := newTestTools(t)
	h := NewHTTPHandler(tl.catalog, Options{APIKey: "secret"})

	rec := postMCP(t, h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Bearer realm="mcp"`, rec.Header().Get("WWW-Authenticate"))

	rec = postMCP(t, h, "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

	rec = postMCP(t, h, "Basic secret")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postMCP(t, h, "Bearer secret")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "lcsc-scrap")
}

func TestMCPEndpointOpenWithoutKey(t *testing.T) {
	tl, _ := newTestTools(t)
	h := NewHTTPHandler(tl.catalog, Options{})

	rec := postMCP(t, h, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
