package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"finboard/pkg/core/finance"
	"finboard/pkg/core/logger"
)

const (
	// DefaultBaseURL is the Yahoo-compatible market data endpoint.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default request rate (requests per second).
	DefaultRateLimit = 5

	fundamentalsModules = "incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory,assetProfile,price"
)

// Fundamentals bundles one ticker's statement tables and company info.
// Every table is non-nil; any of them may be empty.
type Fundamentals struct {
	Income   *finance.Statement
	Balance  *finance.Statement
	Cashflow *finance.Statement
	Info     *finance.Statement
}

// Client fetches price history and fundamentals from the market data
// provider. Data-quality and transport failures never surface as errors to
// callers: they degrade to empty results, logged at warn level.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Entry
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a custom endpoint (tests use this).
// An empty value keeps the default.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Log) ClientOption {
	return func(c *Client) {
		c.log = log.WithComponent("marketdata")
	}
}

// WithRateLimit sets a custom request rate.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a provider client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log:     logger.GetLogger().WithComponent("marketdata"),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a rate-limited GET and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// FetchPriceHistory returns the daily closing price series for a ticker over
// the given period ("5y", "1y", ...). The series is ascending by date with no
// duplicate dates. Any failure, including an all-null payload, yields an
// empty series.
func (c *Client) FetchPriceHistory(ctx context.Context, ticker, period string) finance.PriceSeries {
	params := url.Values{}
	params.Set("range", period)
	params.Set("interval", "1d")

	var resp chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), params, &resp); err != nil {
		c.log.WithError(err).WithField("ticker", ticker).Warn("price history fetch failed")
		return finance.PriceSeries{}
	}
	if resp.Chart.Error != nil {
		c.log.WithError(resp.Chart.Error).WithField("ticker", ticker).Warn("price history fetch failed")
		return finance.PriceSeries{}
	}
	if len(resp.Chart.Result) == 0 {
		return finance.PriceSeries{}
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return finance.PriceSeries{}
	}
	closes := result.Indicators.Quote[0].Close

	series := make(finance.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		px := *closes[i]
		if math.IsNaN(px) || math.IsInf(px, 0) {
			continue
		}
		series = append(series, finance.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: px,
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	// Collapse duplicate dates, keeping the later entry.
	deduped := series[:0]
	for _, p := range series {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(p.Date) {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}

// FetchFundamentals returns the three statement tables plus the company info
// block for a ticker. Tables are never nil; any failure yields empty tables.
func (c *Client) FetchFundamentals(ctx context.Context, ticker string) Fundamentals {
	empty := Fundamentals{
		Income:   &finance.Statement{},
		Balance:  &finance.Statement{},
		Cashflow: &finance.Statement{},
		Info:     &finance.Statement{},
	}

	params := url.Values{}
	params.Set("modules", fundamentalsModules)

	var resp quoteSummaryResponse
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), params, &resp); err != nil {
		c.log.WithError(err).WithField("ticker", ticker).Warn("fundamentals fetch failed")
		return empty
	}
	if resp.QuoteSummary.Error != nil {
		c.log.WithError(resp.QuoteSummary.Error).WithField("ticker", ticker).Warn("fundamentals fetch failed")
		return empty
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return empty
	}

	r := resp.QuoteSummary.Result[0]
	out := empty
	if r.IncomeStatementHistory != nil {
		out.Income = statementsToTable(r.IncomeStatementHistory.Statements)
	}
	if r.BalanceSheetHistory != nil {
		out.Balance = statementsToTable(r.BalanceSheetHistory.Statements)
	}
	if r.CashflowStatementHistory != nil {
		out.Cashflow = statementsToTable(r.CashflowStatementHistory.Statements)
	}
	out.Info = infoToTable(r.AssetProfile, r.Price)
	return out
}
