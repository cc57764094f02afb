package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/docindex/index"
)

// DefaultLimit caps search results when a request gives no limit.
const DefaultLimit = 10

// Config configures the MCP server.
type Config struct {
	// Name and Version identify the server to clients.
	Name    string
	Version string

	// DefaultLimit applies to searches without a limit. Default: DefaultLimit.
	DefaultLimit int

	// Logger receives request logs. Default: slog.Default().
	Logger *slog.Logger
}

// Server serves index operations as MCP tools.
type Server struct {
	ix     *index.Index
	cfg    Config
	logger *slog.Logger
	server *mcp.Server
}

// New creates a server over ix.
func New(ix *index.Index, cfg Config) (*Server, error) {
	if ix == nil {
		return nil, ErrMissingIndex
	}
	if cfg.Name == "" {
		cfg.Name = "docindex"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}

	s := &Server{
		ix:     ix,
		cfg:    cfg,
		logger: cfg.Logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.registerTools()
	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving mcp", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns an http.Handler for the streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("serving mcp", "transport", "http", "addr", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
