// Package orgmap reconciles partial, inconsistent descriptions of an
// organization from independent public data sources into one canonical
// record. A structured knowledge graph and a free-text encyclopedia article
// are the two primary sources; market, registry, and homepage collaborators
// enrich the record best-effort.
//
// Usage:
//
//	client, err := orgmap.New()
//	if err != nil { ... }
//	record, prov, err := client.LookupName(ctx, "Acme Inc")
package orgmap

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/orgmap/internal/sources/homepage"
	"github.com/agentstation/orgmap/internal/sources/markets"
	"github.com/agentstation/orgmap/internal/sources/opencorp"
	"github.com/agentstation/orgmap/internal/sources/wikidata"
	"github.com/agentstation/orgmap/internal/sources/wikipedia"
	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/logging"
	"github.com/agentstation/orgmap/pkg/places"
	"github.com/agentstation/orgmap/pkg/reconcile"
	"github.com/agentstation/orgmap/pkg/social"
	"github.com/agentstation/orgmap/pkg/tickers"
)

// StructuredSource locates and normalizes a knowledge-graph entity.
type StructuredSource interface {
	SearchEntity(ctx context.Context, name string) (string, error)
	Facts(ctx context.Context, id string) (*reconcile.StructuredFacts, error)
}

// FreeTextSource locates and normalizes an encyclopedia article.
type FreeTextSource interface {
	Search(ctx context.Context, query string) (string, error)
	EntityID(ctx context.Context, title string) (string, error)
	Facts(ctx context.Context, title string) (*reconcile.FreeTextFacts, error)
}

// QuoteSource fetches a market quote for a ticker symbol.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (*companies.Quote, error)
}

// RegistrySource finds an organization's official registration.
type RegistrySource interface {
	Search(ctx context.Context, name string) (*companies.Registration, error)
}

// LinkSource collects the outbound links of a web page.
type LinkSource interface {
	Links(ctx context.Context, url string) ([]string, error)
}

// Client is the reconciliation engine facade. Construct with New; the zero
// value is not usable.
type Client struct {
	structured StructuredSource
	freeText   FreeTextSource
	quotes     QuoteSource
	registry   RegistrySource
	homepage   LinkSource
	fetcher    places.Fetcher

	ranking    tickers.Ranking
	taxonomy   social.Taxonomy
	maxDepth   int
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a Client with the given options. Collaborators not injected
// via options default to the public HTTP implementations sharing one
// transport.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		ranking:  tickers.DefaultRanking(),
		taxonomy: social.DefaultTaxonomy(),
		maxDepth: places.DefaultMaxDepth,
		logger:   *logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	t := transport.New().WithHTTPClient(c.httpClient)
	if c.structured == nil {
		wd := wikidata.New(t)
		c.structured = wd
		if c.fetcher == nil {
			c.fetcher = wd
		}
	}
	if c.freeText == nil {
		c.freeText = wikipedia.New(t)
	}
	if c.quotes == nil {
		c.quotes = markets.New(t)
	}
	if c.registry == nil {
		c.registry = opencorp.New(t)
	}
	if c.homepage == nil {
		c.homepage = homepage.New(t)
	}

	return c, nil
}

// LookupName reconciles a record for an organization identified by name.
func (c *Client) LookupName(ctx context.Context, name string) (*companies.Record, reconcile.Provenance, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, errors.ErrInvalidInput
	}
	return c.lookup(ctx, name, "")
}

// LookupDomain reconciles a record for an organization identified by its
// website domain.
func (c *Client) LookupDomain(ctx context.Context, domain string) (*companies.Record, reconcile.Provenance, error) {
	domain = normalizeDomain(domain)
	if domain == "" {
		return nil, nil, errors.ErrInvalidInput
	}
	return c.lookup(ctx, domain, domain)
}

// lookup is the single reconciliation path. Both entry points differ only
// in the query the sources are probed with and whether a website is already
// known from the locator. The hard-failure rule: when neither the article
// nor the graph entity resolves, the lookup fails with ErrNotFound; every
// other miss is soft and nulls its field group only.
func (c *Client) lookup(ctx context.Context, query, domain string) (*companies.Record, reconcile.Provenance, error) {
	log := c.logger.With().Str("query", query).Logger()

	var entityID string
	title, err := c.freeText.Search(ctx, query)
	if err != nil {
		if !errors.IsNotFound(err) {
			log.Warn().Err(err).Msg("Article search failed")
		}
		title = ""
	}

	var freeTextFacts *reconcile.FreeTextFacts
	if title != "" {
		if entityID, err = c.freeText.EntityID(ctx, title); err != nil {
			log.Debug().Err(err).Str("title", title).Msg("No linked entity on article")
			entityID = ""
		}
		if freeTextFacts, err = c.freeText.Facts(ctx, title); err != nil {
			log.Warn().Err(err).Str("title", title).Msg("Article extraction failed")
			freeTextFacts = nil
		}
	}

	if entityID == "" {
		if entityID, err = c.structured.SearchEntity(ctx, query); err != nil {
			if !errors.IsNotFound(err) {
				log.Warn().Err(err).Msg("Entity search failed")
			}
			entityID = ""
		}
	}

	var structuredFacts *reconcile.StructuredFacts
	if entityID != "" {
		if structuredFacts, err = c.structured.Facts(ctx, entityID); err != nil {
			log.Warn().Err(err).Str("entity_id", entityID).Msg("Entity normalization failed")
			structuredFacts = nil
		}
	}

	if structuredFacts.Empty() && freeTextFacts == nil {
		return nil, nil, errors.NewNotFoundError("organization", query)
	}

	in := reconcile.Input{
		Query:      query,
		Structured: structuredFacts,
		FreeText:   freeTextFacts,
	}
	c.enrich(ctx, &in, domain, log)

	var resolver *places.Resolver
	if c.fetcher != nil {
		resolver = places.NewResolver(c.fetcher).WithMaxDepth(c.maxDepth)
	}
	merger := reconcile.NewMerger(resolver, c.ranking, c.taxonomy).WithLogger(log)
	record, prov := merger.Merge(ctx, in)
	return record, prov, nil
}

// enrich runs the best-effort collaborators and attaches their results to
// the merge input. Every failure here is soft.
func (c *Client) enrich(ctx context.Context, in *reconcile.Input, domain string, log zerolog.Logger) {
	if in.Structured != nil && len(in.Structured.Tickers) > 0 {
		if symbol := c.ranking.ChoosePrimary(in.Structured.Tickers); symbol != "" {
			quote, err := c.quotes.Quote(ctx, symbol)
			if err != nil {
				log.Debug().Err(err).Str("symbol", symbol).Msg("Quote lookup failed")
			} else {
				in.Quote = quote
			}
		}
	}

	registryQuery := in.Query
	if in.FreeText != nil && in.FreeText.Name != "" {
		registryQuery = in.FreeText.Name
	}
	if reg, err := c.registry.Search(ctx, registryQuery); err != nil {
		log.Debug().Err(err).Msg("Registry lookup failed")
	} else {
		in.Registration = reg
	}

	website := ""
	if in.Structured != nil && in.Structured.Website != "" {
		website = in.Structured.Website
	} else if in.FreeText != nil && in.FreeText.Website != "" {
		website = in.FreeText.Website
	} else if domain != "" {
		website = "https://" + domain
	}
	if website != "" {
		if links, err := c.homepage.Links(ctx, website); err != nil {
			log.Debug().Err(err).Str("website", website).Msg("Homepage scan failed")
		} else {
			in.Links = links
		}
	}
}

// normalizeDomain strips a scheme, path, and leading www from a domain
// argument.
func normalizeDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if i := strings.Index(domain, "://"); i >= 0 {
		domain = domain[i+3:]
	}
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return strings.TrimPrefix(domain, "www.")
}
