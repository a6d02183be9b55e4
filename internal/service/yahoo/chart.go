package yahoo

import (
	"context"
	"net/url"
	"strconv"

	"StockMCP/internal/domain/models"
	"StockMCP/pkg/util"
)

type chartIndicators struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta       models.ChartMeta `json:"meta"`
			Timestamp  []int64          `json:"timestamp"`
			Indicators struct {
				Quote []chartIndicators `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// Chart returns OHLCV bars from opts.Period1 until now.
func (c *Client) Chart(ctx context.Context, symbol string, opts models.ChartOptions) (*models.Chart, error) {
	params := url.Values{
		"period1":        {strconv.FormatInt(opts.Period1.Unix(), 10)},
		"period2":        {strconv.FormatInt(c.now().Unix(), 10)},
		"interval":       {opts.Interval},
		"events":         {"div|split"},
		"includePrePost": {"false"},
	}

	var resp chartResponse
	if err := c.get(ctx, "chart", c.cfg.QueryURL+"/v8/finance/chart/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Chart.Result) == 0 {
		return nil, &NotFoundError{Kind: "Chart data", Symbol: symbol}
	}

	r := resp.Chart.Result[0]
	var ind chartIndicators
	if len(r.Indicators.Quote) > 0 {
		ind = r.Indicators.Quote[0]
	}

	bars := make([]models.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		bars = append(bars, models.Bar{
			Date:   util.FromUnix(ts),
			Open:   at(ind.Open, i),
			High:   at(ind.High, i),
			Low:    at(ind.Low, i),
			Close:  at(ind.Close, i),
			Volume: at(ind.Volume, i),
		})
	}

	return &models.Chart{Meta: r.Meta, Quotes: bars}, nil
}

func at(series []*float64, i int) *float64 {
	if i < len(series) {
		return series[i]
	}
	return nil
}
