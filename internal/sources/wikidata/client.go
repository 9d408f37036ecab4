// Package wikidata implements the knowledge-graph collaborator on top of the
// Wikidata action API. It turns an entity's claims into the normalized
// structured payload the merger consumes, and doubles as the batched entity
// fetcher behind the administrative hierarchy walk.
package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/constants"
	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/places"
	"github.com/agentstation/orgmap/pkg/reconcile"
	"github.com/agentstation/orgmap/pkg/temporal"
	"github.com/agentstation/orgmap/pkg/tickers"
)

const (
	sourceName  = "wikidata"
	apiEndpoint = "https://www.wikidata.org/w/api.php"

	// Claim properties read from an organization entity.
	propInstanceOf    = "P31"
	propCountry       = "P17"
	propLocatedIn     = "P131"
	propHeadquarters  = "P159"
	propIndustry      = "P452"
	propStockExchange = "P414"
	propCoordinates   = "P625"
	propWebsite       = "P856"
	propEmployees     = "P1128"

	// Qualifier properties.
	qualPointInTime  = "P585"
	qualTickerSymbol = "P249"
)

// Client talks to the Wikidata action API.
type Client struct {
	transport *transport.Client
	endpoint  string
}

// New creates a Wikidata client sharing the given transport.
func New(t *transport.Client) *Client {
	if t == nil {
		t = transport.New()
	}
	return &Client{transport: t, endpoint: apiEndpoint}
}

// WithEndpoint overrides the API endpoint. Used by tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// SearchEntity resolves a free-form organization name to an entity id using
// wbsearchentities. Returns ErrNotFound when nothing matches.
func (c *Client) SearchEntity(ctx context.Context, name string) (string, error) {
	params := url.Values{
		"action":   {"wbsearchentities"},
		"format":   {"json"},
		"language": {"en"},
		"type":     {"item"},
		"limit":    {"5"},
		"search":   {name},
	}

	var result searchResponse
	if err := c.transport.GetJSON(ctx, sourceName, c.endpoint+"?"+params.Encode(), &result); err != nil {
		return "", err
	}
	if len(result.Search) == 0 {
		return "", errors.NewNotFoundError("entity", name)
	}
	return result.Search[0].ID, nil
}

// FetchEntities retrieves entities by id and projects them onto the place
// graph node shape. Ids absent upstream are simply missing from the result
// map. Implements places.Fetcher.
func (c *Client) FetchEntities(ctx context.Context, ids []string) (map[string]places.Entity, error) {
	raw, err := c.entities(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[string]places.Entity, len(raw))
	for id, e := range raw {
		out[id] = places.Entity{
			ID:          id,
			Label:       e.label(),
			InstanceOf:  e.entityValues(propInstanceOf),
			LocatedIn:   first(e.entityValues(propLocatedIn)),
			CountryID:   first(e.entityValues(propCountry)),
			Coordinates: e.coordinates(),
		}
	}
	return out, nil
}

// Facts fetches one organization entity and normalizes its claims. Entity
// references (industries, types, exchanges) are resolved to display labels
// with one follow-up batch; the headquarters reference stays an id for the
// hierarchy walk.
func (c *Client) Facts(ctx context.Context, id string) (*reconcile.StructuredFacts, error) {
	raw, err := c.entities(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	e, ok := raw[id]
	if !ok {
		return nil, errors.NewNotFoundError("entity", id)
	}

	facts := &reconcile.StructuredFacts{
		Website:        first(e.stringValues(propWebsite)),
		HeadquartersID: first(e.entityValues(propHeadquarters)),
	}

	for _, claim := range e.Claims[propEmployees] {
		amount, ok := claim.Mainsnak.quantityAmount()
		if !ok {
			continue
		}
		facts.Employees = append(facts.Employees, temporal.Statement{
			Value:       amount,
			PointInTime: claim.qualifierTime(qualPointInTime),
		})
	}

	industryIDs := e.entityValues(propIndustry)
	typeIDs := e.entityValues(propInstanceOf)

	type exchangeRef struct {
		entityID string
		symbol   string
	}
	var exchangeRefs []exchangeRef
	for _, claim := range e.Claims[propStockExchange] {
		exchangeID, ok := claim.Mainsnak.entityID()
		if !ok {
			continue
		}
		exchangeRefs = append(exchangeRefs, exchangeRef{
			entityID: exchangeID,
			symbol:   claim.qualifierString(qualTickerSymbol),
		})
	}

	var refs []string
	refs = append(refs, industryIDs...)
	refs = append(refs, typeIDs...)
	for _, ref := range exchangeRefs {
		refs = append(refs, ref.entityID)
	}
	labels, err := c.labels(ctx, refs)
	if err != nil {
		// Reference resolution is soft; the ids themselves are useless as
		// display values, so the affected fields stay empty.
		labels = map[string]string{}
	}

	for _, industryID := range industryIDs {
		if label := labels[industryID]; label != "" {
			facts.Industries = append(facts.Industries, label)
		}
	}
	for _, typeID := range typeIDs {
		if label := labels[typeID]; label != "" {
			facts.Types = append(facts.Types, label)
		}
	}
	for _, ref := range exchangeRefs {
		if ref.symbol == "" {
			continue
		}
		facts.Tickers = append(facts.Tickers, tickers.Candidate{
			Symbol:   ref.symbol,
			Exchange: labels[ref.entityID],
		})
	}

	return facts, nil
}

// entities performs a batched wbgetentities call. Batches are capped at the
// API's id limit.
func (c *Client) entities(ctx context.Context, ids []string) (map[string]entity, error) {
	out := make(map[string]entity)
	for start := 0; start < len(ids); start += constants.MaxEntityBatch {
		end := start + constants.MaxEntityBatch
		if end > len(ids) {
			end = len(ids)
		}
		params := url.Values{
			"action":    {"wbgetentities"},
			"format":    {"json"},
			"languages": {"en"},
			"props":     {"labels|claims"},
			"ids":       {strings.Join(ids[start:end], "|")},
		}

		var result entitiesResponse
		if err := c.transport.GetJSON(ctx, sourceName, c.endpoint+"?"+params.Encode(), &result); err != nil {
			return nil, err
		}
		if result.Error != nil {
			return nil, errors.NewSourceError(sourceName, fmt.Sprintf("%s: %s", result.Error.Code, result.Error.Info), nil)
		}
		for id, e := range result.Entities {
			if e.Missing == nil {
				out[id] = e
			}
		}
	}
	return out, nil
}

// labels resolves entity ids to English display labels.
func (c *Client) labels(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	raw, err := c.entities(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for id, e := range raw {
		out[id] = e.label()
	}
	return out, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
