package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockMCP/internal/handler/api"
	"StockMCP/internal/handler/tools"
	"StockMCP/pkg/config"
	xhttp "StockMCP/pkg/http"
	pkgkafka "StockMCP/pkg/kafka"
	applogger "StockMCP/pkg/logger"

	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const mcpPath = "/mcp"

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	mcp        *mcpsrv.MCPServer
	registry   *tools.Registry
	promReg    *prometheus.Registry
	producer   *pkgkafka.Producer
	rdb        *redis.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. producer and rdb may
// be nil when log shipping or the redis rate limiter are disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	mcp *mcpsrv.MCPServer,
	registry *tools.Registry,
	promReg *prometheus.Registry,
	producer *pkgkafka.Producer,
	rdb *redis.Client,
) *App {
	return &App{
		cfg:      cfg,
		logger:   l,
		mcp:      mcp,
		registry: registry,
		promReg:  promReg,
		producer: producer,
		rdb:      rdb,
	}
}

// Run serves the configured transport and blocks until ctx is cancelled,
// an interrupt arrives, or stdin is closed under the stdio transport.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting",
		applogger.String("transport", a.cfg.Transport),
		applogger.String("name", a.cfg.MCP.Name),
		applogger.String("version", a.cfg.MCP.Version),
		applogger.Int("tools", len(a.registry.Tools())),
	)

	var err error
	switch a.cfg.Transport {
	case config.TransportHTTP:
		err = a.runHTTP(ctx)
	default:
		err = a.runStdio(ctx)
	}

	a.shutdown()
	return err
}

func (a *App) runStdio(ctx context.Context) error {
	stdio := mcpsrv.NewStdioServer(a.mcp)
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func (a *App) runHTTP(ctx context.Context) error {
	streamable := mcpsrv.NewStreamableHTTPServer(a.mcp)

	handlers := []xhttp.Handler{
		api.NewMCPEchoHandler(mcpPath, streamable),
		api.NewToolsEchoHandler(a.logger, a.registry),
	}

	opts := []xhttp.ServerOption{
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithLogger(a.logger.With(applogger.String("component", "http"))),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(a.promReg, a.promReg, a.cfg.Metrics.Path))
	}

	a.httpServer = xhttp.NewServer(handlers, opts...)
	if err := a.httpServer.Start(); err != nil {
		return err
	}
	a.logger.Info("mcp endpoint ready", applogger.String("path", mcpPath))

	<-ctx.Done()
	a.logger.Info("shutdown signal received")

	if err := streamable.Shutdown(context.Background()); err != nil {
		a.logger.Warn("mcp session shutdown error", applogger.Error(err))
	}
	return nil
}

// shutdown releases infrastructure clients in reverse start order.
func (a *App) shutdown() {
	if a.httpServer != nil {
		if err := a.httpServer.Stop(context.Background()); err != nil {
			a.logger.Error("http shutdown error", applogger.Error(err))
		}
	}

	// flush aggregated warn/error entries before the producer goes away
	a.logger.RemoveCollector()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
}
