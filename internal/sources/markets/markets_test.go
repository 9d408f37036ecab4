package markets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/errors"
)

type stubProvider struct {
	quote *companies.Quote
	err   error
	calls int
}

func (p *stubProvider) Quote(_ context.Context, _ string) (*companies.Quote, error) {
	p.calls++
	return p.quote, p.err
}

func TestQuotePrimaryWins(t *testing.T) {
	price := 42.5
	primary := &stubProvider{quote: &companies.Quote{Symbol: "ACME", Price: &price}}
	fallback := &stubProvider{}

	s := New(nil).WithProviders(primary, fallback)
	quote, err := s.Quote(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, "ACME", quote.Symbol)
	assert.Equal(t, 0, fallback.calls)
}

func TestQuoteFallsBack(t *testing.T) {
	price := 41.0
	primary := &stubProvider{err: errors.NewAPIError(sourceName, 503, "down")}
	fallback := &stubProvider{quote: &companies.Quote{Symbol: "ACME", Price: &price}}

	s := New(nil).WithProviders(primary, fallback)
	quote, err := s.Quote(context.Background(), "ACME")
	require.NoError(t, err)
	require.NotNil(t, quote.Price)
	assert.Equal(t, 41.0, *quote.Price)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestQuoteAllProvidersFail(t *testing.T) {
	primary := &stubProvider{err: errors.NewAPIError(sourceName, 503, "down")}
	fallback := &stubProvider{err: errors.NewAPIError(sourceName, 502, "also down")}

	s := New(nil).WithProviders(primary, fallback)
	_, err := s.Quote(context.Background(), "ACME")
	require.Error(t, err)
}

func TestJSONProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ACME", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"quoteResponse": {"result": [
			{"symbol": "ACME", "regularMarketPrice": 187.3, "marketCap": 2300000000}
		]}}`))
	}))
	defer server.Close()

	p := &jsonProvider{transport: transport.New(), endpoint: server.URL}
	quote, err := p.Quote(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, "ACME", quote.Symbol)
	require.NotNil(t, quote.Price)
	assert.Equal(t, 187.3, *quote.Price)
	require.NotNil(t, quote.MarketCap)
	assert.Equal(t, 2300000000.0, *quote.MarketCap)
}

func TestJSONProviderEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"quoteResponse": {"result": []}}`))
	}))
	defer server.Close()

	p := &jsonProvider{transport: transport.New(), endpoint: server.URL}
	_, err := p.Quote(context.Background(), "WAT")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestCSVProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme", r.URL.Query().Get("s"))
		_, _ = w.Write([]byte("Symbol,Date,Time,Open,High,Low,Close,Volume\nACME,2024-06-14,22:00:00,41.2,42.9,41.0,42.5,1200300\n"))
	}))
	defer server.Close()

	p := &csvProvider{transport: transport.New(), endpoint: server.URL}
	quote, err := p.Quote(context.Background(), "ACME")
	require.NoError(t, err)
	require.NotNil(t, quote.Price)
	assert.Equal(t, 42.5, *quote.Price)
	assert.Nil(t, quote.MarketCap)
}

func TestCSVProviderUnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Symbol,Date,Time,Open,High,Low,Close,Volume\nWAT,N/D,N/D,N/D,N/D,N/D,N/D,N/D\n"))
	}))
	defer server.Close()

	p := &csvProvider{transport: transport.New(), endpoint: server.URL}
	_, err := p.Quote(context.Background(), "WAT")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestParseQuoteCSVMalformed(t *testing.T) {
	_, err := parseQuoteCSV(strings.NewReader("Symbol,Open\n"), "ACME")
	require.Error(t, err)
}
