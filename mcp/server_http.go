package mcp

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	requestsPerMinute = 60
	shutdownTimeout   = 5 * time.Second
)

// NewHTTPHandler routes /healthz and the streamable MCP endpoint at /mcp.
// /mcp requires a bearer token when opts.APIKey is set and is rate limited
// per client IP.
func NewHTTPHandler(catalog Catalog, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	mcpServer := server.NewStreamableHTTPServer(NewServer(catalog, opts), server.WithStateLess(true))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(requestsPerMinute, time.Minute))
		if opts.APIKey != "" {
			r.Use(func(next http.Handler) http.Handler { return bearerAuth(opts.APIKey, next) })
		}
		r.Handle("/mcp", mcpServer)
	})
	return r
}

// ServeHTTP serves the MCP HTTP handler on addr until ctx is cancelled, then
// shuts down gracefully.
func ServeHTTP(ctx context.Context, addr string, catalog Catalog, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      NewHTTPHandler(catalog, opts),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Infow("shutting down MCP HTTP server", "addr", addr)
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdown <- srv.Shutdown(sctx)
	}()

	log.Infow("MCP HTTP server listening", "addr", addr, "auth", opts.APIKey != "")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdown
}

func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func bearerAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp"`)
			http.Error(w, `{"error":"missing Authorization header"}`, http.StatusUnauthorized)
			return
		}
		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp", error="invalid_token"`)
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
