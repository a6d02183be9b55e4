package yahoo

import (
	"context"
	"net/url"
	"strconv"

	"StockMCP/internal/domain/models"
)

type searchResponse struct {
	Quotes []models.SearchQuote `json:"quotes"`
	News   []struct {
		Title               *string `json:"title"`
		Publisher           *string `json:"publisher"`
		Link                *string `json:"link"`
		ProviderPublishTime Number  `json:"providerPublishTime"`
	} `json:"news"`
}

// Search looks up symbols and news matching query.
func (c *Client) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	params := url.Values{
		"q":                {query},
		"quotesCount":      {strconv.Itoa(c.cfg.QuotesCount)},
		"newsCount":        {strconv.Itoa(c.cfg.NewsCount)},
		"enableFuzzyQuery": {"false"},
		"quotesQueryId":    {"tss_match_phrase_query"},
		"newsQueryId":      {"news_cie_vespa"},
	}

	var resp searchResponse
	if err := c.get(ctx, "search", c.cfg.QueryURL+"/v1/finance/search", params, &resp); err != nil {
		return nil, err
	}

	out := &models.SearchResult{Quotes: resp.Quotes}
	if resp.News != nil {
		out.News = make([]models.NewsItem, 0, len(resp.News))
		for _, n := range resp.News {
			out.News = append(out.News, models.NewsItem{
				Title:               n.Title,
				Publisher:           n.Publisher,
				Link:                n.Link,
				ProviderPublishTime: n.ProviderPublishTime.Time(),
			})
		}
	}
	return out, nil
}
