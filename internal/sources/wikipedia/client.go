// Package wikipedia implements the free-text collaborator: it locates an
// encyclopedia article for an organization, scrapes the summary table out of
// the rendered page, and reports the article's knowledge-graph entity id so
// both collaborators can describe the same organization.
package wikipedia

import (
	"context"
	stderrors "errors"
	"net/url"

	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/reconcile"
)

const (
	sourceName   = "wikipedia"
	apiEndpoint  = "https://en.wikipedia.org/w/api.php"
	restEndpoint = "https://en.wikipedia.org/api/rest_v1"
)

// Client talks to the Wikipedia action and REST APIs.
type Client struct {
	transport *transport.Client
	api       string
	rest      string
}

// New creates a Wikipedia client sharing the given transport.
func New(t *transport.Client) *Client {
	if t == nil {
		t = transport.New()
	}
	return &Client{transport: t, api: apiEndpoint, rest: restEndpoint}
}

// WithEndpoints overrides both endpoints. Used by tests.
func (c *Client) WithEndpoints(api, rest string) *Client {
	c.api = api
	c.rest = rest
	return c
}

// Search resolves a free-form query (an organization name or its domain) to
// an article title. Returns ErrNotFound when no article matches.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srlimit":  {"5"},
		"srsearch": {query},
	}

	var result searchResponse
	if err := c.transport.GetJSON(ctx, sourceName, c.api+"?"+params.Encode(), &result); err != nil {
		return "", err
	}
	if len(result.Query.Search) == 0 {
		return "", errors.NewNotFoundError("article", query)
	}
	return result.Query.Search[0].Title, nil
}

// EntityID returns the knowledge-graph entity id linked to the article, or
// "" when the article carries none.
func (c *Client) EntityID(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action": {"query"},
		"format": {"json"},
		"prop":   {"pageprops"},
		"titles": {title},
	}

	var result pagePropsResponse
	if err := c.transport.GetJSON(ctx, sourceName, c.api+"?"+params.Encode(), &result); err != nil {
		return "", err
	}
	for _, page := range result.Query.Pages {
		if page.Missing != nil {
			return "", errors.NewNotFoundError("article", title)
		}
		return page.PageProps.WikibaseItem, nil
	}
	return "", errors.NewNotFoundError("article", title)
}

// Facts fetches the article's rendered HTML and extracts the summary table.
// A missing article is ErrNotFound; an article without a summary table
// yields facts carrying only the title.
func (c *Client) Facts(ctx context.Context, title string) (*reconcile.FreeTextFacts, error) {
	endpoint := c.rest + "/page/html/" + url.PathEscape(title)
	doc, err := c.transport.GetHTML(ctx, sourceName, endpoint)
	if err != nil {
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, errors.NewNotFoundError("article", title)
		}
		return nil, err
	}
	return parseInfobox(doc, title), nil
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type pagePropsResponse struct {
	Query struct {
		Pages map[string]struct {
			Missing   *string `json:"missing"`
			PageProps struct {
				WikibaseItem string `json:"wikibase_item"`
			} `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}
