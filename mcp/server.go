package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/lukman83/lcsc-scrap/internal/lcsc"
)

const (
	serverName    = "lcsc-scrap"
	serverVersion = "1.0.0"
)

// Options configures the MCP server.
type Options struct {
	// Defaults applies to search_products calls that leave filters unset.
	Defaults lcsc.SearchOpts
	// APIKey enables bearer auth on the HTTP transport when non-empty.
	APIKey string
	Logger *zap.SugaredLogger
}

// NewServer builds an MCP server exposing the catalog tools.
func NewServer(catalog Catalog, opts Options) *server.MCPServer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	registerTools(s, &tools{catalog: catalog, defaults: opts.Defaults, log: log})
	return s
}

// Serve runs the MCP server on stdio until stdin closes.
func Serve(catalog Catalog, opts Options) error {
	return server.ServeStdio(NewServer(catalog, opts))
}
