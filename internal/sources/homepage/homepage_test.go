package homepage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orgmap/internal/transport"
)

const pageHTML = `<html>
<head><link rel="me" href="https://github.com/acme"></head>
<body>
  <a href="/about">About</a>
  <a href="https://www.linkedin.com/company/acme">LinkedIn</a>
  <a href="mailto:hello@acme.example">Email</a>
  <a href="https://www.linkedin.com/company/acme">LinkedIn again</a>
  <a rel="nofollow me" href="https://x.com/acme">X</a>
</body></html>`

func TestLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer server.Close()

	links, err := New(transport.New()).Links(context.Background(), server.URL)
	require.NoError(t, err)

	// Identity links first, then document order; duplicates and non-http
	// schemes dropped.
	assert.Equal(t, []string{
		"https://github.com/acme",
		"https://x.com/acme",
		server.URL + "/about",
		"https://www.linkedin.com/company/acme",
	}, links)
}

func TestLinksEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer server.Close()

	links, err := New(transport.New()).Links(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, links)
}
