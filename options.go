package orgmap

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/places"
	"github.com/agentstation/orgmap/pkg/social"
	"github.com/agentstation/orgmap/pkg/tickers"
)

// Option is a function that configures a Client.
type Option func(*Client) error

// WithRanking configures the exchange preference order used to pick the
// primary ticker.
func WithRanking(ranking tickers.Ranking) Option {
	return func(c *Client) error {
		if len(ranking) == 0 {
			return &errors.ValidationError{Field: "ranking", Message: "must not be empty"}
		}
		c.ranking = ranking
		return nil
	}
}

// WithTaxonomy configures the social platform taxonomy.
func WithTaxonomy(taxonomy social.Taxonomy) Option {
	return func(c *Client) error {
		if len(taxonomy) == 0 {
			return &errors.ValidationError{Field: "taxonomy", Message: "must not be empty"}
		}
		c.taxonomy = taxonomy
		return nil
	}
}

// WithMaxDepth configures how many located-in hops the headquarters walk
// may take.
func WithMaxDepth(depth int) Option {
	return func(c *Client) error {
		if depth < 1 {
			return &errors.ValidationError{Field: "max_depth", Message: "must be at least 1"}
		}
		c.maxDepth = depth
		return nil
	}
}

// WithHTTPClient configures the HTTP client shared by all default
// collaborators.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// WithLogger configures the logger used across the lookup path.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithStructuredSource injects a knowledge-graph collaborator.
func WithStructuredSource(source StructuredSource) Option {
	return func(c *Client) error {
		c.structured = source
		return nil
	}
}

// WithFreeTextSource injects a free-text collaborator.
func WithFreeTextSource(source FreeTextSource) Option {
	return func(c *Client) error {
		c.freeText = source
		return nil
	}
}

// WithQuoteSource injects a market-data collaborator.
func WithQuoteSource(source QuoteSource) Option {
	return func(c *Client) error {
		c.quotes = source
		return nil
	}
}

// WithRegistrySource injects a registry collaborator.
func WithRegistrySource(source RegistrySource) Option {
	return func(c *Client) error {
		c.registry = source
		return nil
	}
}

// WithLinkSource injects a homepage-link collaborator.
func WithLinkSource(source LinkSource) Option {
	return func(c *Client) error {
		c.homepage = source
		return nil
	}
}

// WithPlaceFetcher injects the entity fetcher behind the headquarters walk.
func WithPlaceFetcher(fetcher places.Fetcher) Option {
	return func(c *Client) error {
		c.fetcher = fetcher
		return nil
	}
}
