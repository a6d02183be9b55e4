package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockMCP/internal/domain/models"
	domrepo "StockMCP/internal/domain/repository"
	"StockMCP/internal/usecase"
	applogger "StockMCP/pkg/logger"
	"StockMCP/pkg/validation"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	GetQuote       = "get_quote"
	GetHistorical  = "get_historical"
	GetFinancials  = "get_financials"
	GetCompanyInfo = "get_company_info"
	SearchSymbols  = "search_symbols"
	GetNews        = "get_news"
)

// outcome labels for the tool call counter
const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeInvalid = "invalid"
)

var ErrUnknownTool = errors.New("unknown tool")

type runFunc func(ctx context.Context, args map[string]any) (models.ToolResult, error)

// Tool pairs a published definition with its invocation.
type Tool struct {
	Definition mcp.Tool
	run        runFunc
}

// Registry holds the market tools in publication order. Both the MCP server
// and the REST mirror dispatch through Call.
type Registry struct {
	tools   []Tool
	byName  map[string]int
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewRegistry(mt *usecase.MarketTools, metrics domrepo.Metrics, logger *applogger.Logger) *Registry {
	r := &Registry{
		byName:  map[string]int{},
		metrics: metrics,
		logger:  logger,
	}

	r.add(mcp.NewTool(GetQuote,
		mcp.WithDescription("Get real-time stock quote data including price, change, volume, and key metrics"),
		symbolArg("Stock ticker symbol (e.g., AAPL, GOOGL, MSFT)"),
	), func(ctx context.Context, args map[string]any) (models.ToolResult, error) {
		var req models.QuoteRequest
		if err := validation.Bind(ctx, args, &req); err != nil {
			return models.ToolResult{}, err
		}
		return mt.GetQuote(ctx, req.Symbol), nil
	})

	r.add(mcp.NewTool(GetHistorical,
		mcp.WithDescription("Get historical OHLCV (Open, High, Low, Close, Volume) price data"),
		symbolArg("Stock ticker symbol (e.g., AAPL, GOOGL)"),
		mcp.WithString("period",
			mcp.Description("Time period for historical data"),
			mcp.Enum(models.Periods...),
			mcp.DefaultString("1mo"),
		),
		mcp.WithString("interval",
			mcp.Description("Data interval"),
			mcp.Enum(models.Intervals...),
			mcp.DefaultString("1d"),
		),
	), func(ctx context.Context, args map[string]any) (models.ToolResult, error) {
		var req models.HistoricalRequest
		if err := validation.Bind(ctx, args, &req); err != nil {
			return models.ToolResult{}, err
		}
		return mt.GetHistorical(ctx, req.Symbol, req.Period, req.Interval), nil
	})

	r.add(mcp.NewTool(GetFinancials,
		mcp.WithDescription("Get company financial statements (income statement, balance sheet, or cash flow)"),
		symbolArg("Stock ticker symbol"),
		mcp.WithString("statement",
			mcp.Required(),
			mcp.Description("Type of financial statement"),
			mcp.Enum(models.Statements...),
		),
		mcp.WithBoolean("quarterly",
			mcp.Description("Get quarterly data instead of annual"),
			mcp.DefaultBool(false),
		),
	), func(ctx context.Context, args map[string]any) (models.ToolResult, error) {
		var req models.FinancialsRequest
		if err := validation.Bind(ctx, args, &req); err != nil {
			return models.ToolResult{}, err
		}
		return mt.GetFinancials(ctx, req.Symbol, req.Statement, req.Quarterly), nil
	})

	r.add(mcp.NewTool(GetCompanyInfo,
		mcp.WithDescription("Get company profile including sector, industry, description, and key statistics"),
		symbolArg("Stock ticker symbol"),
	), func(ctx context.Context, args map[string]any) (models.ToolResult, error) {
		var req models.CompanyInfoRequest
		if err := validation.Bind(ctx, args, &req); err != nil {
			return models.ToolResult{}, err
		}
		return mt.GetCompanyInfo(ctx, req.Symbol), nil
	})

	r.add(mcp.NewTool(SearchSymbols,
		mcp.WithDescription("Search for stock symbols by company name or keywords"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (company name or keywords)"),
			mcp.MinLength(1),
		),
	), func(ctx context.Context, args map[string]any) (models.ToolResult, error) {
		var req models.SearchRequest
		if err := validation.Bind(ctx, args, &req); err != nil {
			return models.ToolResult{}, err
		}
		return mt.SearchSymbols(ctx, req.Query), nil
	})

	r.add(mcp.NewTool(GetNews,
		mcp.WithDescription("Get latest news for a stock symbol"),
		symbolArg("Stock ticker symbol"),
	), func(ctx context.Context, args map[string]any) (models.ToolResult, error) {
		var req models.NewsRequest
		if err := validation.Bind(ctx, args, &req); err != nil {
			return models.ToolResult{}, err
		}
		return mt.GetNews(ctx, req.Symbol), nil
	})

	return r
}

func symbolArg(desc string) mcp.ToolOption {
	return mcp.WithString("symbol",
		mcp.Required(),
		mcp.Description(desc),
		mcp.MinLength(1),
		mcp.MaxLength(10),
	)
}

func (r *Registry) add(def mcp.Tool, run runFunc) {
	r.byName[def.Name] = len(r.tools)
	r.tools = append(r.tools, Tool{Definition: def, run: run})
}

// Tools returns the definitions in publication order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Call validates args and runs the named tool. A returned error means the
// call was rejected (unknown tool or invalid arguments); upstream failures
// come back as an error envelope with a nil error.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (models.ToolResult, error) {
	idx, ok := r.byName[name]
	if !ok {
		return models.ToolResult{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	res, err := r.tools[idx].run(ctx, args)
	elapsed := time.Since(start)
	r.metrics.RecordLatency(name, elapsed.Seconds())

	switch {
	case err != nil:
		r.metrics.RecordToolCall(name, outcomeInvalid)
		r.logger.Debug("tool call rejected",
			applogger.String("tool", name),
			applogger.Error(err),
		)
		return models.ToolResult{}, err
	case res.IsError:
		r.metrics.RecordToolCall(name, outcomeError)
	default:
		r.metrics.RecordToolCall(name, outcomeOK)
	}

	r.logger.Info("tool call",
		applogger.String("tool", name),
		applogger.Bool("is_error", res.IsError),
		applogger.Duration("duration", elapsed),
	)
	return res, nil
}
