package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	domrepo "StockMCP/internal/domain/repository"
	apphttp "StockMCP/pkg/http"
	applogger "StockMCP/pkg/logger"
	"StockMCP/pkg/metrics"
	"StockMCP/pkg/ratelimit"
)

const limiterKey = "yahoo"

// Config holds provider endpoints and request tuning.
type Config struct {
	QueryURL      string
	TimeseriesURL string
	CookieURL     string
	CrumbURL      string
	UserAgent     string
	Timeout       time.Duration
	QuotesCount   int
	NewsCount     int
}

// Client implements MarketData against Yahoo Finance. Requests carry a
// session crumb bound to the cookies in the client's jar; the crumb is fetched
// lazily and refreshed once when the provider rejects it.
type Client struct {
	cfg     Config
	http    *apphttp.Client
	limiter ratelimit.Limiter
	metrics domrepo.Metrics
	logger  *applogger.Logger
	now     func() time.Time

	mu    sync.Mutex
	crumb string
}

type Option func(*Client)

func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithMetrics(m domrepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

var _ domrepo.MarketData = (*Client)(nil)

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		metrics: metrics.Nop{},
		logger:  applogger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = apphttp.NewClient(
		apphttp.WithTimeout(cfg.Timeout),
		apphttp.WithCookieJar(nil),
		apphttp.WithHeader("User-Agent", cfg.UserAgent),
		apphttp.WithHeader("Accept", "application/json, text/plain, */*"),
	)
	return c
}

func (c *Client) sessionCrumb(ctx context.Context, refresh bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" && !refresh {
		return c.crumb, nil
	}

	// The cookie endpoint answers with an error status but still sets the
	// session cookie, so only transport failures matter here.
	resp, err := c.http.SendRequest(ctx, &apphttp.RequestOptions{Method: apphttp.MethodGet, URL: c.cfg.CookieURL})
	if err != nil {
		return "", fmt.Errorf("fetch session cookie: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	var body []byte
	if err := c.http.SendAndParse(ctx, &apphttp.RequestOptions{Method: apphttp.MethodGet, URL: c.cfg.CrumbURL}, &body); err != nil {
		c.logger.Warn("crumb request failed", applogger.Error(err))
		return "", ErrNoCrumb
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{ ") {
		return "", ErrNoCrumb
	}

	c.crumb = crumb
	c.logger.Debug("session crumb refreshed", applogger.Bool("refresh", refresh))
	return crumb, nil
}

// get performs one provider call and decodes the JSON body into dest.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, params url.Values, dest interface{}) error {
	if c.limiter != nil {
		ok, err := c.limiter.Allow(ctx, limiterKey)
		switch {
		case err != nil:
			// a broken limiter backend should not take the tools down
			c.logger.Warn("rate limiter unavailable", applogger.Error(err))
		case !ok:
			return ErrRateLimited
		}
	}

	for attempt := 0; ; attempt++ {
		crumb, err := c.sessionCrumb(ctx, attempt > 0)
		if err != nil {
			return err
		}

		query := url.Values{}
		for k, v := range params {
			query[k] = v
		}
		query.Set("crumb", crumb)

		start := time.Now()
		var body []byte
		err = c.http.SendAndParse(ctx, &apphttp.RequestOptions{
			Method:      apphttp.MethodGet,
			URL:         rawURL,
			QueryParams: query,
		}, &body)

		var statusErr *apphttp.StatusError
		status := 200
		switch {
		case errors.As(err, &statusErr):
			status = statusErr.StatusCode
		case err != nil:
			status = 0
		}
		c.metrics.RecordUpstreamRequest(endpoint, status, time.Since(start).Seconds())

		if statusErr != nil {
			if (status == 401 || status == 403) && attempt == 0 {
				c.logger.Debug("crumb rejected, retrying", applogger.String("endpoint", endpoint), applogger.Int("status", status))
				continue
			}
			if status == 429 {
				return ErrRateLimited
			}
			if apiErr := decodeAPIError(status, statusErr.Body); apiErr != nil {
				return apiErr
			}
			return fmt.Errorf("%s request: %w", endpoint, statusErr)
		}
		if err != nil {
			return fmt.Errorf("%s request: %w", endpoint, err)
		}

		// successful responses can still carry an error object
		if apiErr := decodeAPIError(status, body); apiErr != nil {
			return apiErr
		}
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		return nil
	}
}
