// Package transport provides the shared HTTP plumbing for every public data
// collaborator. The sources it talks to are all anonymous public endpoints,
// so there is no authentication layer; what the package standardizes is the
// timeout, the User-Agent, and the decode-or-typed-error discipline.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/orgmap/pkg/constants"
	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client wraps an http.Client with the request conventions shared by all
// collaborators.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a transport client with the default timeout.
func New() *Client {
	return &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		userAgent: constants.UserAgent,
	}
}

// WithHTTPClient replaces the underlying HTTP client. Pass nil to keep the
// current one.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

// Do performs the request with the shared headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return c.http.Do(req)
}

// Get performs a GET against the endpoint.
func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewSourceError(hostOf(endpoint), "create request", err)
	}
	return c.Do(req)
}

// GetJSON performs a GET and decodes the JSON body into target. Non-200
// statuses become an APIError carrying the body as the message.
func (c *Client) GetJSON(ctx context.Context, source, endpoint string, target any) error {
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		return errors.NewSourceError(source, "GET "+endpoint, err)
	}
	return DecodeJSON(resp, source, endpoint, target)
}

// GetHTML performs a GET and parses the body as an HTML document.
func (c *Client) GetHTML(ctx context.Context, source, endpoint string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewSourceError(source, "create request", err)
	}
	req.Header.Set("Accept", "text/html")
	resp, err := c.Do(req)
	if err != nil {
		return nil, errors.NewSourceError(source, "GET "+endpoint, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    string(body),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewParseError("html", source, "parse document", err)
	}
	return doc, nil
}

// DecodeJSON decodes a JSON response into the target structure and always
// closes the body.
func DecodeJSON(resp *http.Response, source, endpoint string, target any) error {
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewSourceError(source, "read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewParseError("json", source, "decode response", err)
	}
	return nil
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close response body")
	}
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}
