package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockMCP/internal/domain/models"
	domrepo "StockMCP/internal/domain/repository"
	applogger "StockMCP/pkg/logger"
)

const unknownError = "Unknown error"

var statementModules = map[string]string{
	models.StatementIncome:   models.TimeSeriesModuleFinancials,
	models.StatementBalance:  models.TimeSeriesModuleBalanceSheet,
	models.StatementCashflow: models.TimeSeriesModuleCashFlow,
}

var companyInfoModules = []string{
	models.ModuleAssetProfile,
	models.ModuleDefaultKeyStatistics,
	models.ModuleSummaryDetail,
	models.ModulePrice,
}

// MarketTools implements the six market lookups. Each method validates
// nothing (inputs arrive validated), calls the upstream capability once and
// always returns an envelope: upstream failures become error envelopes.
type MarketTools struct {
	market domrepo.MarketData
	now    func() time.Time
	logger *applogger.Logger
}

type Option func(*MarketTools)

// WithClock overrides the clock used to resolve period windows.
func WithClock(now func() time.Time) Option {
	return func(t *MarketTools) { t.now = now }
}

func WithLogger(l *applogger.Logger) Option {
	return func(t *MarketTools) { t.logger = l }
}

func NewMarketTools(market domrepo.MarketData, opts ...Option) *MarketTools {
	t := &MarketTools{
		market: market,
		now:    time.Now,
		logger: applogger.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *MarketTools) GetQuote(ctx context.Context, symbol string) models.ToolResult {
	subject := fmt.Sprintf("Error fetching quote for %s", symbol)

	q, err := t.market.Quote(ctx, strings.ToUpper(symbol))
	if err != nil {
		return t.fail("get_quote", subject, err)
	}

	return t.render("get_quote", subject, models.QuotePayload{
		Symbol:           q.Symbol,
		Name:             models.FirstNonEmpty(q.ShortName, q.LongName),
		Price:            q.RegularMarketPrice,
		Change:           q.RegularMarketChange,
		ChangePercent:    q.RegularMarketChangePercent,
		Volume:           q.RegularMarketVolume,
		MarketCap:        q.MarketCap,
		PERatio:          q.TrailingPE,
		FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
		AvgVolume:        q.AverageDailyVolume3Month,
		Open:             q.RegularMarketOpen,
		PreviousClose:    q.RegularMarketPreviousClose,
		DayHigh:          q.RegularMarketDayHigh,
		DayLow:           q.RegularMarketDayLow,
	})
}

func (t *MarketTools) GetHistorical(ctx context.Context, symbol, period, interval string) models.ToolResult {
	subject := fmt.Sprintf("Error fetching historical data for %s", symbol)

	chart, err := t.market.Chart(ctx, strings.ToUpper(symbol), models.ChartOptions{
		Period1:  StartDate(period, t.now()),
		Interval: interval,
	})
	if err != nil {
		return t.fail("get_historical", subject, err)
	}

	data := make([]models.HistoricalBar, 0, len(chart.Quotes))
	for _, q := range chart.Quotes {
		data = append(data, models.HistoricalBar{
			Date:   q.Date,
			Open:   q.Open,
			High:   q.High,
			Low:    q.Low,
			Close:  q.Close,
			Volume: q.Volume,
		})
	}

	// symbol and currency come from the provider metadata, not the request
	return t.render("get_historical", subject, models.HistoricalPayload{
		Symbol:   chart.Meta.Symbol,
		Currency: chart.Meta.Currency,
		Data:     data,
	})
}

func (t *MarketTools) GetFinancials(ctx context.Context, symbol, statement string, quarterly bool) models.ToolResult {
	subject := fmt.Sprintf("Error fetching financials for %s", symbol)

	module, ok := statementModules[statement]
	if !ok {
		return t.fail("get_financials", subject, fmt.Errorf("unknown statement type %q", statement))
	}

	periodType := models.TimeSeriesAnnual
	if quarterly {
		periodType = models.TimeSeriesQuarterly
	}

	// The lookback is fixed at five years for every statement type.
	records, err := t.market.FundamentalsTimeSeries(ctx, strings.ToUpper(symbol), models.TimeSeriesOptions{
		Period1: StartDate("5y", t.now()),
		Type:    periodType,
		Module:  module,
	}, models.ModuleConfig{ValidateResult: false})
	if err != nil {
		return t.fail("get_financials", subject, err)
	}
	if records == nil {
		records = []models.StatementRecord{}
	}

	return t.render("get_financials", subject, models.FinancialsPayload{
		Type:       statement,
		Quarterly:  quarterly,
		Statements: records,
	})
}

func (t *MarketTools) GetCompanyInfo(ctx context.Context, symbol string) models.ToolResult {
	subject := fmt.Sprintf("Error fetching company info for %s", symbol)
	normalized := strings.ToUpper(symbol)

	summary, err := t.market.QuoteSummary(ctx, normalized, models.QuoteSummaryOptions{
		Modules: companyInfoModules,
	})
	if err != nil {
		return t.fail("get_company_info", subject, err)
	}

	payload := models.CompanyInfoPayload{Symbol: normalized}
	if p := summary.Price; p != nil {
		payload.Name = models.FirstNonEmpty(p.ShortName, p.LongName)
	}
	if a := summary.AssetProfile; a != nil {
		payload.Sector = a.Sector
		payload.Industry = a.Industry
		payload.Website = a.Website
		payload.Employees = a.FullTimeEmployees
		payload.Description = a.LongBusinessSummary
		payload.Country = a.Country
		payload.City = a.City
	}
	if s := summary.DefaultKeyStatistics; s != nil {
		payload.KeyStats = models.KeyStats{
			Beta:                    s.Beta,
			PriceToBook:             s.PriceToBook,
			ForwardPE:               s.ForwardPE,
			ProfitMargins:           s.ProfitMargins,
			FloatShares:             s.FloatShares,
			SharesOutstanding:       s.SharesOutstanding,
			HeldPercentInsiders:     s.HeldPercentInsiders,
			HeldPercentInstitutions: s.HeldPercentInstitutions,
		}
	}
	if d := summary.SummaryDetail; d != nil {
		payload.DividendInfo = models.DividendInfo{
			DividendRate:   d.DividendRate,
			DividendYield:  d.DividendYield,
			ExDividendDate: d.ExDividendDate,
			PayoutRatio:    d.PayoutRatio,
		}
	}

	return t.render("get_company_info", subject, payload)
}

func (t *MarketTools) SearchSymbols(ctx context.Context, query string) models.ToolResult {
	subject := fmt.Sprintf(`Error searching for "%s"`, query)

	res, err := t.market.Search(ctx, query)
	if err != nil {
		return t.fail("search_symbols", subject, err)
	}

	matches := make([]models.SymbolMatch, 0, len(res.Quotes))
	for _, q := range res.Quotes {
		if q.QuoteType == nil || *q.QuoteType != "EQUITY" || q.Symbol == nil {
			continue
		}
		matches = append(matches, models.SymbolMatch{
			Symbol:   *q.Symbol,
			Name:     models.FirstNonEmpty(q.ShortName, q.LongName),
			Exchange: q.Exchange,
			Type:     *q.QuoteType,
		})
	}

	return t.render("search_symbols", subject, matches)
}

func (t *MarketTools) GetNews(ctx context.Context, symbol string) models.ToolResult {
	subject := fmt.Sprintf("Error fetching news for %s", symbol)

	// news shares the search endpoint
	res, err := t.market.Search(ctx, strings.ToUpper(symbol))
	if err != nil {
		return t.fail("get_news", subject, err)
	}

	articles := make([]models.NewsArticle, 0, len(res.News))
	for _, n := range res.News {
		articles = append(articles, models.NewsArticle{
			Title:       n.Title,
			Publisher:   n.Publisher,
			Link:        n.Link,
			PublishedAt: n.ProviderPublishTime,
		})
	}

	return t.render("get_news", subject, articles)
}

func (t *MarketTools) render(tool, subject string, payload any) models.ToolResult {
	text, err := models.EncodePayload(payload)
	if err != nil {
		return t.fail(tool, subject, fmt.Errorf("encode payload: %w", err))
	}
	return models.TextResult(text)
}

func (t *MarketTools) fail(tool, subject string, err error) models.ToolResult {
	msg := FailureMessage(err)
	t.logger.Warn("upstream call failed",
		applogger.String("tool", tool),
		applogger.String("message", msg),
	)
	return models.ErrorResult(subject + ": " + msg)
}

// FailureMessage is the description shown to callers for an upstream failure.
func FailureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return unknownError
	}
	return err.Error()
}
