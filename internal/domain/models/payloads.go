package models

import "time"

// Reshaped tool payloads. Absent upstream values are omitted from the JSON.

type QuotePayload struct {
	Symbol           *string  `json:"symbol,omitempty"`
	Name             *string  `json:"name,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	Change           *float64 `json:"change,omitempty"`
	ChangePercent    *float64 `json:"changePercent,omitempty"`
	Volume           *float64 `json:"volume,omitempty"`
	MarketCap        *float64 `json:"marketCap,omitempty"`
	PERatio          *float64 `json:"peRatio,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow,omitempty"`
	AvgVolume        *float64 `json:"avgVolume,omitempty"`
	Open             *float64 `json:"open,omitempty"`
	PreviousClose    *float64 `json:"previousClose,omitempty"`
	DayHigh          *float64 `json:"dayHigh,omitempty"`
	DayLow           *float64 `json:"dayLow,omitempty"`
}

type HistoricalBar struct {
	Date   time.Time `json:"date"`
	Open   *float64  `json:"open"`
	High   *float64  `json:"high"`
	Low    *float64  `json:"low"`
	Close  *float64  `json:"close"`
	Volume *float64  `json:"volume"`
}

type HistoricalPayload struct {
	Symbol   string          `json:"symbol"`
	Currency string          `json:"currency"`
	Data     []HistoricalBar `json:"data"`
}

type FinancialsPayload struct {
	Type       string            `json:"type"`
	Quarterly  bool              `json:"quarterly"`
	Statements []StatementRecord `json:"statements"`
}

type KeyStats struct {
	Beta                    *float64 `json:"beta,omitempty"`
	PriceToBook             *float64 `json:"priceToBook,omitempty"`
	ForwardPE               *float64 `json:"forwardPE,omitempty"`
	ProfitMargins           *float64 `json:"profitMargins,omitempty"`
	FloatShares             *float64 `json:"floatShares,omitempty"`
	SharesOutstanding       *float64 `json:"sharesOutstanding,omitempty"`
	HeldPercentInsiders     *float64 `json:"heldPercentInsiders,omitempty"`
	HeldPercentInstitutions *float64 `json:"heldPercentInstitutions,omitempty"`
}

type DividendInfo struct {
	DividendRate   *float64   `json:"dividendRate,omitempty"`
	DividendYield  *float64   `json:"dividendYield,omitempty"`
	ExDividendDate *time.Time `json:"exDividendDate,omitempty"`
	PayoutRatio    *float64   `json:"payoutRatio,omitempty"`
}

type CompanyInfoPayload struct {
	Symbol       string       `json:"symbol"`
	Name         *string      `json:"name,omitempty"`
	Sector       *string      `json:"sector,omitempty"`
	Industry     *string      `json:"industry,omitempty"`
	Website      *string      `json:"website,omitempty"`
	Employees    *float64     `json:"employees,omitempty"`
	Description  *string      `json:"description,omitempty"`
	Country      *string      `json:"country,omitempty"`
	City         *string      `json:"city,omitempty"`
	KeyStats     KeyStats     `json:"keyStats"`
	DividendInfo DividendInfo `json:"dividendInfo"`
}

type SymbolMatch struct {
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name,omitempty"`
	Exchange *string `json:"exchange,omitempty"`
	Type     string  `json:"type"`
}

type NewsArticle struct {
	Title       *string    `json:"title,omitempty"`
	Publisher   *string    `json:"publisher,omitempty"`
	Link        *string    `json:"link,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}
