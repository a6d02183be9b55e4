package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"StockMCP/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarket struct {
	quote   *models.Quote
	chart   *models.Chart
	summary *models.QuoteSummary
	search  *models.SearchResult
	records []models.StatementRecord
	err     error

	symbols     []string
	chartOpts   models.ChartOptions
	summaryOpts models.QuoteSummaryOptions
	tsOpts      models.TimeSeriesOptions
	tsCfg       models.ModuleConfig
}

func (f *fakeMarket) Quote(_ context.Context, symbol string) (*models.Quote, error) {
	f.symbols = append(f.symbols, symbol)
	return f.quote, f.err
}

func (f *fakeMarket) Chart(_ context.Context, symbol string, opts models.ChartOptions) (*models.Chart, error) {
	f.symbols = append(f.symbols, symbol)
	f.chartOpts = opts
	return f.chart, f.err
}

func (f *fakeMarket) QuoteSummary(_ context.Context, symbol string, opts models.QuoteSummaryOptions) (*models.QuoteSummary, error) {
	f.symbols = append(f.symbols, symbol)
	f.summaryOpts = opts
	return f.summary, f.err
}

func (f *fakeMarket) Search(_ context.Context, query string) (*models.SearchResult, error) {
	f.symbols = append(f.symbols, query)
	return f.search, f.err
}

func (f *fakeMarket) FundamentalsTimeSeries(_ context.Context, symbol string, opts models.TimeSeriesOptions, cfg models.ModuleConfig) ([]models.StatementRecord, error) {
	f.symbols = append(f.symbols, symbol)
	f.tsOpts = opts
	f.tsCfg = cfg
	return f.records, f.err
}

var fixedNow = time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC)

func newTools(f *fakeMarket) *MarketTools {
	return NewMarketTools(f, WithClock(func() time.Time { return fixedNow }))
}

func str(s string) *string     { return &s }
func num(v float64) *float64   { return &v }
func ts(t time.Time) *time.Time { return &t }

func decodeObject(t *testing.T, res models.ToolResult) map[string]any {
	t.Helper()
	require.False(t, res.IsError, res.Text())
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &out))
	return out
}

func decodeArray(t *testing.T, res models.ToolResult) []map[string]any {
	t.Helper()
	require.False(t, res.IsError, res.Text())
	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &out))
	return out
}

func TestGetQuote(t *testing.T) {
	f := &fakeMarket{quote: &models.Quote{
		Symbol:                     str("AAPL"),
		ShortName:                  str("Apple Inc."),
		RegularMarketPrice:         num(150.25),
		RegularMarketChange:        num(2.5),
		RegularMarketChangePercent: num(1.69),
		RegularMarketVolume:        num(50000000),
		MarketCap:                  num(2400000000000),
		TrailingPE:                 num(25.5),
		FiftyTwoWeekHigh:           num(180),
		FiftyTwoWeekLow:            num(120),
		AverageDailyVolume3Month:   num(60000000),
		RegularMarketOpen:          num(148),
		RegularMarketPreviousClose: num(147.75),
		RegularMarketDayHigh:       num(151),
		RegularMarketDayLow:        num(147.5),
	}}

	res := newTools(f).GetQuote(context.Background(), "aapl")
	data := decodeObject(t, res)

	assert.Equal(t, []string{"AAPL"}, f.symbols)
	assert.Equal(t, "AAPL", data["symbol"])
	assert.Equal(t, "Apple Inc.", data["name"])
	assert.Equal(t, 150.25, data["price"])
	assert.Equal(t, 2.5, data["change"])
	assert.Equal(t, 2400000000000.0, data["marketCap"])
	assert.Equal(t, 25.5, data["peRatio"])
	assert.Equal(t, 60000000.0, data["avgVolume"])
	assert.Equal(t, 147.5, data["dayLow"])
	assert.Contains(t, res.Text(), `"marketCap": 2400000000000`)
}

func TestGetQuote_NameFallsBackToLongName(t *testing.T) {
	f := &fakeMarket{quote: &models.Quote{
		Symbol:    str("BRK-B"),
		ShortName: str(""),
		LongName:  str("Berkshire Hathaway Inc."),
	}}

	data := decodeObject(t, newTools(f).GetQuote(context.Background(), "brk-b"))

	assert.Equal(t, "Berkshire Hathaway Inc.", data["name"])
	assert.NotContains(t, data, "price")
}

func TestGetQuote_UpstreamFailure(t *testing.T) {
	f := &fakeMarket{err: errors.New("Symbol not found")}

	res := newTools(f).GetQuote(context.Background(), "invalid")

	assert.True(t, res.IsError)
	assert.Equal(t, "Error fetching quote for invalid: Symbol not found", res.Text())
	assert.Equal(t, []string{"INVALID"}, f.symbols)
}

func TestGetQuote_FailureWithoutDescription(t *testing.T) {
	f := &fakeMarket{err: errors.New("")}

	res := newTools(f).GetQuote(context.Background(), "msft")

	assert.True(t, res.IsError)
	assert.Equal(t, "Error fetching quote for msft: Unknown error", res.Text())
}

func TestGetHistorical(t *testing.T) {
	day1 := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	f := &fakeMarket{chart: &models.Chart{
		Meta: models.ChartMeta{Symbol: "AAPL", Currency: "USD"},
		Quotes: []models.Bar{
			{Date: day1, Open: num(145), High: num(150), Low: num(144), Close: num(147), Volume: num(1000000)},
			{Date: day1.Add(24 * time.Hour), Open: num(147), High: num(149), Low: num(146), Close: nil, Volume: num(900000)},
		},
	}}

	res := newTools(f).GetHistorical(context.Background(), "aapl", "1y", "1wk")
	data := decodeObject(t, res)

	assert.Equal(t, []string{"AAPL"}, f.symbols)
	assert.Equal(t, fixedNow.Add(-365*24*time.Hour), f.chartOpts.Period1)
	assert.Equal(t, "1wk", f.chartOpts.Interval)
	assert.Equal(t, "AAPL", data["symbol"])
	assert.Equal(t, "USD", data["currency"])

	bars := data["data"].([]any)
	require.Len(t, bars, 2)
	first := bars[0].(map[string]any)
	assert.Equal(t, 147.0, first["close"])
	assert.Equal(t, "2024-01-02T14:30:00Z", first["date"])
	assert.Nil(t, bars[1].(map[string]any)["close"])
}

func TestGetHistorical_EchoesProviderSymbol(t *testing.T) {
	f := &fakeMarket{chart: &models.Chart{Meta: models.ChartMeta{Symbol: "^GSPC", Currency: "USD"}}}

	data := decodeObject(t, newTools(f).GetHistorical(context.Background(), "^gspc", "max", "1mo"))

	assert.Equal(t, "^GSPC", data["symbol"])
	assert.Equal(t, []any{}, data["data"])
	assert.Equal(t, epoch, f.chartOpts.Period1)
}

func TestGetHistorical_UpstreamFailure(t *testing.T) {
	f := &fakeMarket{err: errors.New("No data found")}

	res := newTools(f).GetHistorical(context.Background(), "zzzz", "1mo", "1d")

	assert.True(t, res.IsError)
	assert.Equal(t, "Error fetching historical data for zzzz: No data found", res.Text())
}

func TestGetFinancials_ModuleAndPeriodType(t *testing.T) {
	cases := []struct {
		statement  string
		quarterly  bool
		wantModule string
		wantType   string
	}{
		{"income", false, "financials", "annual"},
		{"income", true, "financials", "quarterly"},
		{"balance", false, "balance-sheet", "annual"},
		{"cashflow", true, "cash-flow", "quarterly"},
	}

	for _, tc := range cases {
		t.Run(tc.statement, func(t *testing.T) {
			f := &fakeMarket{records: []models.StatementRecord{{"totalRevenue": 400000000000.0}}}

			data := decodeObject(t, newTools(f).GetFinancials(context.Background(), "aapl", tc.statement, tc.quarterly))

			assert.Equal(t, []string{"AAPL"}, f.symbols)
			assert.Equal(t, tc.wantModule, f.tsOpts.Module)
			assert.Equal(t, tc.wantType, f.tsOpts.Type)
			assert.Equal(t, fixedNow.Add(-1825*24*time.Hour), f.tsOpts.Period1)
			assert.False(t, f.tsCfg.ValidateResult)

			assert.Equal(t, tc.statement, data["type"])
			assert.Equal(t, tc.quarterly, data["quarterly"])
			statements := data["statements"].([]any)
			require.Len(t, statements, 1)
			assert.Equal(t, 400000000000.0, statements[0].(map[string]any)["totalRevenue"])
		})
	}
}

func TestGetFinancials_UpstreamFailure(t *testing.T) {
	f := &fakeMarket{err: errors.New("Failed to fetch")}

	res := newTools(f).GetFinancials(context.Background(), "aapl", "income", false)

	assert.True(t, res.IsError)
	assert.Equal(t, "Error fetching financials for aapl: Failed to fetch", res.Text())
}

func TestGetCompanyInfo(t *testing.T) {
	exDiv := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	f := &fakeMarket{summary: &models.QuoteSummary{
		AssetProfile: &models.AssetProfile{
			Sector:              str("Technology"),
			Industry:            str("Consumer Electronics"),
			Website:             str("https://www.apple.com"),
			FullTimeEmployees:   num(164000),
			LongBusinessSummary: str("Apple designs phones."),
			Country:             str("United States"),
			City:                str("Cupertino"),
		},
		DefaultKeyStatistics: &models.KeyStatistics{Beta: num(1.2), ForwardPE: num(28.1)},
		SummaryDetail:        &models.SummaryDetail{DividendRate: num(0.96), ExDividendDate: ts(exDiv)},
		Price:                &models.PriceModule{ShortName: str("Apple Inc."), LongName: str("Apple Inc. (long)")},
	}}

	data := decodeObject(t, newTools(f).GetCompanyInfo(context.Background(), "aapl"))

	assert.Equal(t, []string{"AAPL"}, f.symbols)
	assert.Equal(t, []string{"assetProfile", "defaultKeyStatistics", "summaryDetail", "price"}, f.summaryOpts.Modules)
	assert.Equal(t, "AAPL", data["symbol"])
	assert.Equal(t, "Apple Inc.", data["name"])
	assert.Equal(t, "Technology", data["sector"])
	assert.Equal(t, "Consumer Electronics", data["industry"])
	assert.Equal(t, 164000.0, data["employees"])
	assert.Equal(t, "Apple designs phones.", data["description"])
	assert.Equal(t, 1.2, data["keyStats"].(map[string]any)["beta"])
	dividend := data["dividendInfo"].(map[string]any)
	assert.Equal(t, 0.96, dividend["dividendRate"])
	assert.Equal(t, "2024-05-10T00:00:00Z", dividend["exDividendDate"])
}

func TestGetCompanyInfo_MissingModules(t *testing.T) {
	f := &fakeMarket{summary: &models.QuoteSummary{
		AssetProfile: &models.AssetProfile{Sector: str("Technology")},
	}}

	data := decodeObject(t, newTools(f).GetCompanyInfo(context.Background(), "aapl"))

	assert.NotContains(t, data, "name")
	assert.Equal(t, "Technology", data["sector"])
	assert.Equal(t, map[string]any{}, data["keyStats"])
	assert.Equal(t, map[string]any{}, data["dividendInfo"])
}

func TestGetCompanyInfo_UpstreamFailure(t *testing.T) {
	f := &fakeMarket{err: errors.New("Quote not found")}

	res := newTools(f).GetCompanyInfo(context.Background(), "aapl")

	assert.True(t, res.IsError)
	assert.Equal(t, "Error fetching company info for aapl: Quote not found", res.Text())
}

func TestSearchSymbols_KeepsEquitiesInOrder(t *testing.T) {
	f := &fakeMarket{search: &models.SearchResult{Quotes: []models.SearchQuote{
		{Symbol: str("AAPL"), ShortName: str("Apple Inc."), Exchange: str("NMS"), QuoteType: str("EQUITY")},
		{Symbol: str("AAPL240621C00150000"), ShortName: str("AAPL Call"), QuoteType: str("OPTION")},
		{Symbol: str("APLE"), LongName: str("Apple Hospitality REIT"), Exchange: str("NYQ"), QuoteType: str("EQUITY")},
		{Symbol: str("NOTYPE"), ShortName: str("No type")},
		{ShortName: str("No symbol"), QuoteType: str("EQUITY")},
	}}}

	out := decodeArray(t, newTools(f).SearchSymbols(context.Background(), "apple"))

	assert.Equal(t, []string{"apple"}, f.symbols)
	require.Len(t, out, 2)
	assert.Equal(t, map[string]any{"symbol": "AAPL", "name": "Apple Inc.", "exchange": "NMS", "type": "EQUITY"}, out[0])
	assert.Equal(t, "APLE", out[1]["symbol"])
	assert.Equal(t, "Apple Hospitality REIT", out[1]["name"])
}

func TestSearchSymbols_KeepsEmptySymbol(t *testing.T) {
	f := &fakeMarket{search: &models.SearchResult{Quotes: []models.SearchQuote{
		{Symbol: str(""), ShortName: str("Blank"), QuoteType: str("EQUITY")},
	}}}

	out := decodeArray(t, newTools(f).SearchSymbols(context.Background(), "blank"))

	require.Len(t, out, 1)
	assert.Equal(t, "", out[0]["symbol"])
	assert.Equal(t, "Blank", out[0]["name"])
}

func TestSearchSymbols_Empty(t *testing.T) {
	f := &fakeMarket{search: &models.SearchResult{}}

	res := newTools(f).SearchSymbols(context.Background(), "xyzabc")

	assert.False(t, res.IsError)
	assert.Equal(t, "[]", res.Text())
}

func TestSearchSymbols_UpstreamFailure(t *testing.T) {
	f := &fakeMarket{err: errors.New("Search failed")}

	res := newTools(f).SearchSymbols(context.Background(), "apple")

	assert.True(t, res.IsError)
	assert.Equal(t, `Error searching for "apple": Search failed`, res.Text())
}

func TestGetNews(t *testing.T) {
	published := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f := &fakeMarket{search: &models.SearchResult{News: []models.NewsItem{
		{Title: str("Apple announces new iPhone"), Publisher: str("Reuters"), Link: str("https://example.com/news/1"), ProviderPublishTime: ts(published)},
		{Title: str("Second"), Publisher: str("Bloomberg"), Link: str("https://example.com/news/2"), ProviderPublishTime: ts(published)},
	}}}

	out := decodeArray(t, newTools(f).GetNews(context.Background(), "aapl"))

	assert.Equal(t, []string{"AAPL"}, f.symbols)
	require.Len(t, out, 2)
	assert.Equal(t, "Apple announces new iPhone", out[0]["title"])
	assert.Equal(t, "Reuters", out[0]["publisher"])
	assert.Equal(t, "https://example.com/news/1", out[0]["link"])
	assert.Equal(t, "2024-06-01T12:00:00Z", out[0]["publishedAt"])
	assert.Equal(t, "Second", out[1]["title"])
}

func TestGetNews_MissingFieldsAreAbsent(t *testing.T) {
	f := &fakeMarket{search: &models.SearchResult{News: []models.NewsItem{
		{Title: str("Headline only")},
	}}}

	out := decodeArray(t, newTools(f).GetNews(context.Background(), "aapl"))

	require.Len(t, out, 1)
	assert.Equal(t, map[string]any{"title": "Headline only"}, out[0])
}

func TestGetNews_MissingNewsList(t *testing.T) {
	f := &fakeMarket{search: &models.SearchResult{Quotes: []models.SearchQuote{{Symbol: str("AAPL")}}}}

	res := newTools(f).GetNews(context.Background(), "aapl")

	assert.False(t, res.IsError)
	assert.Equal(t, "[]", res.Text())
}

func TestGetNews_UpstreamFailure(t *testing.T) {
	f := &fakeMarket{err: errors.New("timeout")}

	res := newTools(f).GetNews(context.Background(), "aapl")

	assert.True(t, res.IsError)
	assert.Equal(t, "Error fetching news for aapl: timeout", res.Text())
}

func TestResultsAreStable(t *testing.T) {
	f := &fakeMarket{
		quote:  &models.Quote{Symbol: str("AAPL"), RegularMarketPrice: num(1)},
		search: &models.SearchResult{Quotes: []models.SearchQuote{{Symbol: str("AAPL"), QuoteType: str("EQUITY")}}},
	}
	tools := newTools(f)
	ctx := context.Background()

	assert.Equal(t, tools.GetQuote(ctx, "aapl").Text(), tools.GetQuote(ctx, "aapl").Text())
	assert.Equal(t, tools.SearchSymbols(ctx, "apple").Text(), tools.SearchSymbols(ctx, "apple").Text())
}

func TestEnvelopeOmitsIsErrorOnSuccess(t *testing.T) {
	f := &fakeMarket{quote: &models.Quote{Symbol: str("AAPL")}}

	ok, err := json.Marshal(newTools(f).GetQuote(context.Background(), "aapl"))
	require.NoError(t, err)
	assert.NotContains(t, string(ok), "isError")

	f.err = errors.New("down")
	failed, err := json.Marshal(newTools(f).GetQuote(context.Background(), "aapl"))
	require.NoError(t, err)
	assert.Contains(t, string(failed), `"isError":true`)
}
