package di

import (
	"context"
	"fmt"
	"time"

	"StockMCP/internal/domain/repository"
	"StockMCP/internal/handler/mcpserver"
	"StockMCP/internal/handler/tools"
	"StockMCP/internal/service/yahoo"
	"StockMCP/internal/usecase"
	"StockMCP/pkg/config"
	pkgkafka "StockMCP/pkg/kafka"
	applogger "StockMCP/pkg/logger"
	"StockMCP/pkg/metrics"
	"StockMCP/pkg/ratelimit"
	"StockMCP/pkg/server"

	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// ProvidePrometheusRegistry creates the registry every collector in the
// process registers with.
func ProvidePrometheusRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideKafkaProducer creates the log shipping producer. Nil when shipping
// is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Log.Shipping.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Log.Shipping.Brokers),
		pkgkafka.WithCompression("gzip"),
		pkgkafka.WithBatchTimeout(time.Second),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger creates the application logger. Under the stdio transport
// stdout carries the protocol, so logs never go there.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	output := cfg.Log.Output
	if cfg.Transport == config.TransportStdio && output == "stdout" {
		output = "stderr"
	}

	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.Shipping.Interval,
			CountThreshold: cfg.Log.Shipping.Threshold,
			Topic:          cfg.Log.Shipping.Topic,
			Publisher:      producer,
		})
	}

	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRedisClient connects to Redis when the rate limiter is backed by it.
// Nil otherwise.
func ProvideRedisClient(cfg *config.Config) (*redis.Client, error) {
	rl := cfg.Yahoo.RateLimit
	if !rl.Enabled || rl.Backend != "redis" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ProvideLimiter returns the upstream rate limiter, or nil when disabled.
func ProvideLimiter(cfg *config.Config, rdb *redis.Client) ratelimit.Limiter {
	rl := cfg.Yahoo.RateLimit
	switch {
	case !rl.Enabled:
		return nil
	case rl.Backend == "redis" && rdb != nil:
		return ratelimit.NewFixedWindow(rdb, cfg.Redis.Prefix, rl.Capacity, rl.Window)
	default:
		return ratelimit.NewTokenBucket(rl.Capacity, rl.RefillPerSec)
	}
}

// ProvideMarketData creates the Yahoo Finance client.
func ProvideMarketData(cfg *config.Config, limiter ratelimit.Limiter, m repository.Metrics, l *applogger.Logger) repository.MarketData {
	opts := []yahoo.Option{
		yahoo.WithMetrics(m),
		yahoo.WithLogger(l.With(applogger.String("component", "yahoo"))),
	}
	if limiter != nil {
		opts = append(opts, yahoo.WithLimiter(limiter))
	}

	return yahoo.New(yahoo.Config{
		QueryURL:      cfg.Yahoo.QueryURL,
		TimeseriesURL: cfg.Yahoo.TimeseriesURL,
		CookieURL:     cfg.Yahoo.CookieURL,
		CrumbURL:      cfg.Yahoo.CrumbURL,
		UserAgent:     cfg.Yahoo.UserAgent,
		Timeout:       cfg.Yahoo.Timeout,
		QuotesCount:   cfg.Yahoo.QuotesCount,
		NewsCount:     cfg.Yahoo.NewsCount,
	}, opts...)
}

func ProvideMarketTools(market repository.MarketData, l *applogger.Logger) *usecase.MarketTools {
	return usecase.NewMarketTools(market, usecase.WithLogger(l))
}

func ProvideToolRegistry(mt *usecase.MarketTools, m repository.Metrics, l *applogger.Logger) *tools.Registry {
	return tools.NewRegistry(mt, m, l)
}

func ProvideMCPServer(cfg *config.Config, reg *tools.Registry) *mcpsrv.MCPServer {
	return mcpserver.New(cfg.MCP.Name, cfg.MCP.Version, reg)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	mcp *mcpsrv.MCPServer,
	registry *tools.Registry,
	promReg *prometheus.Registry,
	producer *pkgkafka.Producer,
	rdb *redis.Client,
) *server.App {
	return server.New(cfg, l, mcp, registry, promReg, producer, rdb)
}
