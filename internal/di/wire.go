//go:build wireinject
// +build wireinject

package di

import (
	"StockMCP/pkg/config"
	"StockMCP/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics
		ProvidePrometheusRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideRedisClient,
		ProvideLimiter,

		// Upstream
		ProvideMarketData,

		// Use cases and transport
		ProvideMarketTools,
		ProvideToolRegistry,
		ProvideMCPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
