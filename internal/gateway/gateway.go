// ABOUTME: Gateway orchestrator wiring config, tools, sessions, and the HTTP server
// ABOUTME: Manages listener setup, server lifecycle, and graceful shutdown

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/2389/tool-gateway/internal/auth"
	"github.com/2389/tool-gateway/internal/config"
	"github.com/2389/tool-gateway/internal/requestlog"
	"github.com/2389/tool-gateway/internal/session"
	"github.com/2389/tool-gateway/internal/tools"
)

const (
	serverName    = "tool-gateway"
	serverVersion = "1.0.0"

	// sseWaitWindow is how long the SSE emitter waits on the session
	// queue before it emits a ping keepalive instead.
	sseWaitWindow = 30 * time.Second

	// maxRequestBodySize caps JSON-RPC POST bodies.
	maxRequestBodySize = 1 << 20
)

// Gateway orchestrates the tool gateway server components: the tool
// executor, the SSE session registry, the request log, and the HTTP
// server that ties them together.
type Gateway struct {
	config     *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	sessions   *session.Registry
	executor   *tools.Executor
	reqLog     requestlog.Log

	// quit is closed on Shutdown so long-lived SSE streams unblock and
	// their handlers exit inside the shutdown deadline.
	quit     chan struct{}
	quitOnce sync.Once

	// sseWait is the queue wait window; shortened in tests.
	sseWait time.Duration
}

// New creates a gateway from configuration. The request log database is
// opened here; call Shutdown to release it.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := tools.New(tools.Config{
		CommandTimeout:   cfg.Tools.CommandTimeout,
		MaxRandomNumbers: cfg.Tools.MaxRandomNumbers,
	})
	if err != nil {
		return nil, fmt.Errorf("building tool registry: %w", err)
	}

	var reqLog requestlog.Log = requestlog.Nop{}
	if cfg.RequestLog.Path != "" {
		reqLog, err = requestlog.OpenSQLite(cfg.RequestLog.Path)
		if err != nil {
			return nil, fmt.Errorf("opening request log: %w", err)
		}
	}

	g := &Gateway{
		config:   cfg,
		logger:   logger.With("component", "gateway"),
		sessions: session.NewRegistry(),
		executor: tools.NewExecutor(registry, reqLog, logger),
		reqLog:   reqLog,
		quit:     make(chan struct{}),
		sseWait:  sseWaitWindow,
	}

	g.httpServer = &http.Server{
		Handler:           g.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return g, nil
}

// routes builds the HTTP router. Everything except OAuth discovery sits
// behind the API key check.
func (g *Gateway) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(g.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   g.config.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Connection-ID", g.config.Auth.APIKeyHeader},
		AllowCredentials: true,
	}))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(g.config.Auth.APIKey, g.config.Auth.APIKeyHeader))

		r.Get("/", g.handleRoot)
		r.Get("/health", g.handleHealth)
		r.Get("/mcp/tools", g.handleToolCatalog)
		r.Post("/mcp/call", g.handleDirectCall)
		r.Get("/sse", g.handleSSE)
		r.Post("/sse", g.handleRPCPost)
		r.Post("/message", g.handleRPCPost)
	})

	r.Get("/.well-known/oauth-authorization-server", g.handleOAuthDiscovery)

	return r
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := g.startServer(ln)
	serverErr := g.waitForShutdownSignal(ctx, errCh)

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// startServer starts the HTTP server in a goroutine, returning its error channel.
func (g *Gateway) startServer(ln net.Listener) chan error {
	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()
	return errCh
}

// waitForShutdownSignal waits for context cancellation or a server error.
func (g *Gateway) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		g.logger.Error("server error", "error", err)
		return err
	}
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is
// already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.Shutdown(ctx)
}

// Shutdown stops the HTTP server and closes the request log.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info("shutting down gateway")

	// Release open SSE streams first; Shutdown waits for their handlers.
	g.quitOnce.Do(func() { close(g.quit) })

	var errs []error
	if err := g.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
	}
	if err := g.reqLog.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing request log: %w", err))
	}
	return errors.Join(errs...)
}
