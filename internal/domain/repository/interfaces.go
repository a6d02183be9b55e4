package repository

import (
	"context"

	"StockMCP/internal/domain/models"
)

// MarketData is the upstream market-data capability the tools are built on.
// Implementations return descriptive errors for unknown symbols, transport
// failures and provider-side rejections.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Chart(ctx context.Context, symbol string, opts models.ChartOptions) (*models.Chart, error)
	QuoteSummary(ctx context.Context, symbol string, opts models.QuoteSummaryOptions) (*models.QuoteSummary, error)
	Search(ctx context.Context, query string) (*models.SearchResult, error)
	FundamentalsTimeSeries(ctx context.Context, symbol string, opts models.TimeSeriesOptions, cfg models.ModuleConfig) ([]models.StatementRecord, error)
}

type Metrics interface {
	RecordToolCall(tool, outcome string)
	RecordLatency(op string, seconds float64)
	RecordUpstreamRequest(endpoint string, status int, seconds float64)
}
