package yahoo

import (
	"context"
	"net/url"
	"strings"

	"StockMCP/internal/domain/models"
)

type quoteResponse struct {
	QuoteResponse struct {
		Result []models.Quote `json:"result"`
	} `json:"quoteResponse"`
}

// Quote returns the latest quote for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	var resp quoteResponse
	params := url.Values{"symbols": {symbol}}
	if err := c.get(ctx, "quote", c.cfg.QueryURL+"/v7/finance/quote", params, &resp); err != nil {
		return nil, err
	}

	results := resp.QuoteResponse.Result
	if len(results) == 0 {
		return nil, &NotFoundError{Kind: "Quote", Symbol: symbol}
	}
	for i := range results {
		if results[i].Symbol != nil && strings.EqualFold(*results[i].Symbol, symbol) {
			return &results[i], nil
		}
	}
	// the provider may answer under a remapped symbol
	return &results[0], nil
}
