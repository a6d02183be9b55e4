package models

// Tool inputs. Tags drive both the defaults pass and the validator.

type QuoteRequest struct {
	Symbol string `json:"symbol" validate:"required,min=1,max=10"`
}

type HistoricalRequest struct {
	Symbol   string `json:"symbol" validate:"required,min=1,max=10"`
	Period   string `json:"period" default:"1mo" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y max"`
	Interval string `json:"interval" default:"1d" validate:"oneof=1d 1wk 1mo"`
}

type FinancialsRequest struct {
	Symbol    string `json:"symbol" validate:"required,min=1,max=10"`
	Statement string `json:"statement" validate:"required,oneof=income balance cashflow"`
	Quarterly bool   `json:"quarterly" default:"false"`
}

type CompanyInfoRequest struct {
	Symbol string `json:"symbol" validate:"required,min=1,max=10"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

type NewsRequest struct {
	Symbol string `json:"symbol" validate:"required,min=1,max=10"`
}

// Enumerations shared by the validator tags above and the published tool schemas.
var (
	Periods    = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "max"}
	Intervals  = []string{"1d", "1wk", "1mo"}
	Statements = []string{StatementIncome, StatementBalance, StatementCashflow}
)

const (
	StatementIncome   = "income"
	StatementBalance  = "balance"
	StatementCashflow = "cashflow"
)
