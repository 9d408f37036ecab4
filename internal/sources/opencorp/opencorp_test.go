package opencorp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/errors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(transport.New()).WithEndpoint(server.URL), server
}

func TestSearch(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Acme Inc", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"results": {"companies": [
			{"company": {"name": "ACME HOLDINGS LTD", "jurisdiction_code": "gb", "company_number": "00000000", "inactive": true}},
			{"company": {"name": "ACME INC", "jurisdiction_code": "us_de", "company_number": "1234567", "inactive": false}}
		]}}`))
	})
	defer server.Close()

	reg, err := c.Search(context.Background(), "Acme Inc")
	require.NoError(t, err)
	assert.Equal(t, "us_de", reg.Jurisdiction)
	assert.Equal(t, "1234567", reg.Number)
}

func TestSearchNoMatch(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": {"companies": []}}`))
	})
	defer server.Close()

	_, err := c.Search(context.Background(), "ghost co")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
