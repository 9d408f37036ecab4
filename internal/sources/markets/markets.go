// Package markets fetches a best-effort market quote for a listed
// organization. Two independent providers are chained: a JSON quote API and
// a CSV end-of-day fallback, so a single provider outage does not null the
// financials field.
package markets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/logging"
)

const (
	sourceName = "markets"

	quoteEndpoint    = "https://query1.finance.yahoo.com/v7/finance/quote"
	fallbackEndpoint = "https://stooq.com/q/l/"
)

// Provider fetches a quote for one ticker symbol.
type Provider interface {
	Quote(ctx context.Context, symbol string) (*companies.Quote, error)
}

// Service chains a primary provider with a fallback.
type Service struct {
	primary  Provider
	fallback Provider
}

// New creates a market-data service with the default provider chain.
func New(t *transport.Client) *Service {
	if t == nil {
		t = transport.New()
	}
	return &Service{
		primary:  &jsonProvider{transport: t, endpoint: quoteEndpoint},
		fallback: &csvProvider{transport: t, endpoint: fallbackEndpoint},
	}
}

// WithProviders replaces the provider chain. Used by tests.
func (s *Service) WithProviders(primary, fallback Provider) *Service {
	s.primary = primary
	s.fallback = fallback
	return s
}

// Quote fetches a quote for the symbol, falling back to the secondary
// provider when the primary fails or returns nothing.
func (s *Service) Quote(ctx context.Context, symbol string) (*companies.Quote, error) {
	quote, err := s.primary.Quote(ctx, symbol)
	if err == nil && quote != nil {
		return quote, nil
	}
	if err != nil {
		logging.Warn().
			Err(err).
			Str("symbol", symbol).
			Msg("Primary market provider failed, trying fallback")
	}

	quote, ferr := s.fallback.Quote(ctx, symbol)
	if ferr != nil {
		if err != nil {
			return nil, errors.NewSourceError(sourceName, "all providers failed", err)
		}
		return nil, ferr
	}
	return quote, nil
}

// jsonProvider reads a quote API response of the common
// quoteResponse/result shape.
type jsonProvider struct {
	transport *transport.Client
	endpoint  string
}

func (p *jsonProvider) Quote(ctx context.Context, symbol string) (*companies.Quote, error) {
	params := url.Values{"symbols": {symbol}}

	var result struct {
		QuoteResponse struct {
			Result []struct {
				Symbol    string   `json:"symbol"`
				Price     *float64 `json:"regularMarketPrice"`
				MarketCap *float64 `json:"marketCap"`
			} `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := p.transport.GetJSON(ctx, sourceName, p.endpoint+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	if len(result.QuoteResponse.Result) == 0 {
		return nil, errors.NewNotFoundError("quote", symbol)
	}

	r := result.QuoteResponse.Result[0]
	return &companies.Quote{
		Symbol:    r.Symbol,
		Price:     r.Price,
		MarketCap: r.MarketCap,
	}, nil
}

// csvProvider reads an end-of-day CSV row (Symbol,...,Close,...). It never
// reports market cap.
type csvProvider struct {
	transport *transport.Client
	endpoint  string
}

func (p *csvProvider) Quote(ctx context.Context, symbol string) (*companies.Quote, error) {
	params := url.Values{
		"s": {strings.ToLower(symbol)},
		"f": {"sd2t2ohlcv"},
		"h": {""},
		"e": {"csv"},
	}

	resp, err := p.transport.Get(ctx, p.endpoint+"?"+params.Encode())
	if err != nil {
		return nil, errors.NewSourceError(sourceName, "fallback request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError(sourceName, resp.StatusCode, "fallback provider error")
	}

	return parseQuoteCSV(resp.Body, symbol)
}

// parseQuoteCSV reads the header row to locate the Close column, then the
// single data row.
func parseQuoteCSV(r io.Reader, symbol string) (*companies.Quote, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParseError("csv", sourceName, "read header", err)
	}

	closeCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "close") {
			closeCol = i
		}
	}
	if closeCol < 0 {
		return nil, errors.NewParseError("csv", sourceName, "no close column", nil)
	}

	row, err := reader.Read()
	if err != nil {
		return nil, errors.NewParseError("csv", sourceName, "read data row", err)
	}
	if closeCol >= len(row) {
		return nil, errors.NewParseError("csv", sourceName, fmt.Sprintf("short row for %s", symbol), nil)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row[closeCol]), 64)
	if err != nil {
		// "N/D" for unknown symbols.
		return nil, errors.NewNotFoundError("quote", symbol)
	}

	return &companies.Quote{Symbol: symbol, Price: &price}, nil
}
