package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orgmap/pkg/errors"
)

func TestGetJSON(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"acme"}`))
	}))
	defer server.Close()

	var payload struct {
		Name string `json:"name"`
	}
	err := New().GetJSON(context.Background(), "test", server.URL, &payload)
	require.NoError(t, err)
	assert.Equal(t, "acme", payload.Name)
	assert.Contains(t, gotUA, "orgmap")
}

func TestGetJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone away", http.StatusBadGateway)
	}))
	defer server.Close()

	var payload map[string]any
	err := New().GetJSON(context.Background(), "test", server.URL, &payload)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestGetJSONMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	var payload map[string]any
	err := New().GetJSON(context.Background(), "test", server.URL, &payload)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestGetHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/html", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`<html><body><a href="https://x.com/acme">X</a></body></html>`))
	}))
	defer server.Close()

	doc, err := New().GetHTML(context.Background(), "test", server.URL)
	require.NoError(t, err)
	href, ok := doc.Find("a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://x.com/acme", href)
}
