package yahoo

import (
	"context"
	"net/url"
	"strings"

	"StockMCP/internal/domain/models"
)

type rawSummary struct {
	AssetProfile *struct {
		Sector              *string `json:"sector"`
		Industry            *string `json:"industry"`
		Website             *string `json:"website"`
		FullTimeEmployees   Number  `json:"fullTimeEmployees"`
		LongBusinessSummary *string `json:"longBusinessSummary"`
		Country             *string `json:"country"`
		City                *string `json:"city"`
	} `json:"assetProfile"`
	DefaultKeyStatistics *struct {
		Beta                    Number `json:"beta"`
		PriceToBook             Number `json:"priceToBook"`
		ForwardPE               Number `json:"forwardPE"`
		ProfitMargins           Number `json:"profitMargins"`
		FloatShares             Number `json:"floatShares"`
		SharesOutstanding       Number `json:"sharesOutstanding"`
		HeldPercentInsiders     Number `json:"heldPercentInsiders"`
		HeldPercentInstitutions Number `json:"heldPercentInstitutions"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail *struct {
		DividendRate   Number `json:"dividendRate"`
		DividendYield  Number `json:"dividendYield"`
		ExDividendDate Number `json:"exDividendDate"`
		PayoutRatio    Number `json:"payoutRatio"`
	} `json:"summaryDetail"`
	Price *struct {
		ShortName *string `json:"shortName"`
		LongName  *string `json:"longName"`
	} `json:"price"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []rawSummary `json:"result"`
	} `json:"quoteSummary"`
}

// QuoteSummary fetches the requested summary modules for symbol.
func (c *Client) QuoteSummary(ctx context.Context, symbol string, opts models.QuoteSummaryOptions) (*models.QuoteSummary, error) {
	params := url.Values{
		"modules":   {strings.Join(opts.Modules, ",")},
		"formatted": {"false"},
	}

	var resp summaryResponse
	if err := c.get(ctx, "quoteSummary", c.cfg.QueryURL+"/v10/finance/quoteSummary/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, &NotFoundError{Kind: "Quote", Symbol: symbol}
	}

	raw := resp.QuoteSummary.Result[0]
	out := &models.QuoteSummary{}
	if a := raw.AssetProfile; a != nil {
		out.AssetProfile = &models.AssetProfile{
			Sector:              a.Sector,
			Industry:            a.Industry,
			Website:             a.Website,
			FullTimeEmployees:   a.FullTimeEmployees.Value,
			LongBusinessSummary: a.LongBusinessSummary,
			Country:             a.Country,
			City:                a.City,
		}
	}
	if s := raw.DefaultKeyStatistics; s != nil {
		out.DefaultKeyStatistics = &models.KeyStatistics{
			Beta:                    s.Beta.Value,
			PriceToBook:             s.PriceToBook.Value,
			ForwardPE:               s.ForwardPE.Value,
			ProfitMargins:           s.ProfitMargins.Value,
			FloatShares:             s.FloatShares.Value,
			SharesOutstanding:       s.SharesOutstanding.Value,
			HeldPercentInsiders:     s.HeldPercentInsiders.Value,
			HeldPercentInstitutions: s.HeldPercentInstitutions.Value,
		}
	}
	if d := raw.SummaryDetail; d != nil {
		out.SummaryDetail = &models.SummaryDetail{
			DividendRate:   d.DividendRate.Value,
			DividendYield:  d.DividendYield.Value,
			ExDividendDate: d.ExDividendDate.Time(),
			PayoutRatio:    d.PayoutRatio.Value,
		}
	}
	if p := raw.Price; p != nil {
		out.Price = &models.PriceModule{ShortName: p.ShortName, LongName: p.LongName}
	}
	return out, nil
}
