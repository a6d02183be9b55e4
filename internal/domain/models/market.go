package models

import "time"

// Records returned by the upstream market-data capability. Field names follow
// the provider so the reshaping code reads like the provider documentation.
// Every field is optional: a nil pointer means the provider did not send it.

type Quote struct {
	Symbol                     *string  `json:"symbol,omitempty"`
	ShortName                  *string  `json:"shortName,omitempty"`
	LongName                   *string  `json:"longName,omitempty"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice,omitempty"`
	RegularMarketChange        *float64 `json:"regularMarketChange,omitempty"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent,omitempty"`
	RegularMarketVolume        *float64 `json:"regularMarketVolume,omitempty"`
	MarketCap                  *float64 `json:"marketCap,omitempty"`
	TrailingPE                 *float64 `json:"trailingPE,omitempty"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh,omitempty"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow,omitempty"`
	AverageDailyVolume3Month   *float64 `json:"averageDailyVolume3Month,omitempty"`
	RegularMarketOpen          *float64 `json:"regularMarketOpen,omitempty"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose,omitempty"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh,omitempty"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow,omitempty"`
}

type ChartOptions struct {
	Period1  time.Time
	Interval string
}

type ChartMeta struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
}

// Bar is one OHLCV sample. Yahoo leaves holes (nulls) in thinly traded series.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   *float64  `json:"open"`
	High   *float64  `json:"high"`
	Low    *float64  `json:"low"`
	Close  *float64  `json:"close"`
	Volume *float64  `json:"volume"`
}

type Chart struct {
	Meta   ChartMeta `json:"meta"`
	Quotes []Bar     `json:"quotes"`
}

// Quote summary sub-modules.
const (
	ModuleAssetProfile         = "assetProfile"
	ModuleDefaultKeyStatistics = "defaultKeyStatistics"
	ModuleSummaryDetail        = "summaryDetail"
	ModulePrice                = "price"
)

type QuoteSummaryOptions struct {
	Modules []string
}

type AssetProfile struct {
	Sector              *string  `json:"sector,omitempty"`
	Industry            *string  `json:"industry,omitempty"`
	Website             *string  `json:"website,omitempty"`
	FullTimeEmployees   *float64 `json:"fullTimeEmployees,omitempty"`
	LongBusinessSummary *string  `json:"longBusinessSummary,omitempty"`
	Country             *string  `json:"country,omitempty"`
	City                *string  `json:"city,omitempty"`
}

type KeyStatistics struct {
	Beta                    *float64 `json:"beta,omitempty"`
	PriceToBook             *float64 `json:"priceToBook,omitempty"`
	ForwardPE               *float64 `json:"forwardPE,omitempty"`
	ProfitMargins           *float64 `json:"profitMargins,omitempty"`
	FloatShares             *float64 `json:"floatShares,omitempty"`
	SharesOutstanding       *float64 `json:"sharesOutstanding,omitempty"`
	HeldPercentInsiders     *float64 `json:"heldPercentInsiders,omitempty"`
	HeldPercentInstitutions *float64 `json:"heldPercentInstitutions,omitempty"`
}

type SummaryDetail struct {
	DividendRate   *float64   `json:"dividendRate,omitempty"`
	DividendYield  *float64   `json:"dividendYield,omitempty"`
	ExDividendDate *time.Time `json:"exDividendDate,omitempty"`
	PayoutRatio    *float64   `json:"payoutRatio,omitempty"`
}

type PriceModule struct {
	ShortName *string `json:"shortName,omitempty"`
	LongName  *string `json:"longName,omitempty"`
}

type QuoteSummary struct {
	AssetProfile         *AssetProfile  `json:"assetProfile,omitempty"`
	DefaultKeyStatistics *KeyStatistics `json:"defaultKeyStatistics,omitempty"`
	SummaryDetail        *SummaryDetail `json:"summaryDetail,omitempty"`
	Price                *PriceModule   `json:"price,omitempty"`
}

type SearchQuote struct {
	Symbol    *string `json:"symbol,omitempty"`
	ShortName *string `json:"shortname,omitempty"`
	LongName  *string `json:"longname,omitempty"`
	Exchange  *string `json:"exchange,omitempty"`
	QuoteType *string `json:"quoteType,omitempty"`
}

type NewsItem struct {
	Title               *string    `json:"title,omitempty"`
	Publisher           *string    `json:"publisher,omitempty"`
	Link                *string    `json:"link,omitempty"`
	ProviderPublishTime *time.Time `json:"providerPublishTime,omitempty"`
}

// SearchResult mirrors the provider search endpoint, which serves both symbol
// lookup and news. News is nil when the provider omitted the list.
type SearchResult struct {
	Quotes []SearchQuote `json:"quotes"`
	News   []NewsItem    `json:"news,omitempty"`
}

// Fundamentals time-series modules and period types.
const (
	TimeSeriesModuleFinancials   = "financials"
	TimeSeriesModuleBalanceSheet = "balance-sheet"
	TimeSeriesModuleCashFlow     = "cash-flow"
	TimeSeriesModuleAll          = "all"

	TimeSeriesAnnual    = "annual"
	TimeSeriesQuarterly = "quarterly"
	TimeSeriesTrailing  = "trailing"
)

type TimeSeriesOptions struct {
	Period1 time.Time
	Type    string
	Module  string
}

// ModuleConfig tunes how strictly a provider response is checked.
type ModuleConfig struct {
	ValidateResult bool
}

// StatementRecord is one reporting period of a financial statement. The set
// of keys depends on the company and the statement, so nothing is assumed.
type StatementRecord map[string]any

// FirstNonEmpty returns the first value that is present and not empty.
func FirstNonEmpty(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
