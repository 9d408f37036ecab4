// Package places classifies a headquarters place into city, region, and
// country by walking the knowledge graph's "located-in" chain. The graph is
// never held in memory as linked nodes: entities are fetched in batches and
// looked up by id, and the walk is bounded to a small configurable depth.
package places

import (
	"context"
	"strings"

	"github.com/agentstation/orgmap/pkg/companies"
)

// Entity is one node of the located-in graph.
type Entity struct {
	ID          string                 `json:"id" yaml:"id"`
	Label       string                 `json:"label,omitempty" yaml:"label,omitempty"`
	InstanceOf  []string               `json:"instance_of,omitempty" yaml:"instance_of,omitempty"` // type-membership entity ids
	LocatedIn   string                 `json:"located_in,omitempty" yaml:"located_in,omitempty"`   // immediate administrative parent id
	CountryID   string                 `json:"country_id,omitempty" yaml:"country_id,omitempty"`   // declared country reference id
	Coordinates *companies.Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// Fetcher is the batched entity-lookup capability exposed by the knowledge
// graph collaborator. Ids absent from the result simply did not resolve.
type Fetcher interface {
	FetchEntities(ctx context.Context, ids []string) (map[string]Entity, error)
}

// DefaultMaxDepth is how many located-in hops the resolver follows. Most
// organizational headquarters resolve within two hops; deeper chains cost an
// extra round-trip per hop for diminishing returns.
const DefaultMaxDepth = 2

// DefaultCityMarkers returns the type-membership ids that classify an entity
// as a city or human settlement.
func DefaultCityMarkers() map[string]bool {
	return map[string]bool{
		"Q515":     true, // city
		"Q486972":  true, // human settlement
		"Q1549591": true, // big city
	}
}

// Resolver walks the located-in chain of a place entity.
type Resolver struct {
	fetcher     Fetcher
	maxDepth    int
	cityMarkers map[string]bool
}

// NewResolver creates a resolver over the given fetcher with the default
// depth and city markers.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{
		fetcher:     fetcher,
		maxDepth:    DefaultMaxDepth,
		cityMarkers: DefaultCityMarkers(),
	}
}

// WithMaxDepth sets how many located-in hops to follow.
func (r *Resolver) WithMaxDepth(depth int) *Resolver {
	if depth > 0 {
		r.maxDepth = depth
	}
	return r
}

// WithCityMarkers replaces the type-membership ids treated as city markers.
func (r *Resolver) WithCityMarkers(markers map[string]bool) *Resolver {
	if markers != nil {
		r.cityMarkers = markers
	}
	return r
}

// Resolve classifies the place entity into a Headquarters. It returns
// (nil, nil) when the place does not resolve at all. Raw and Place always
// carry the entity's display label, even when every other field stays nil.
func (r *Resolver) Resolve(ctx context.Context, placeID string) (*companies.Headquarters, error) {
	entities, err := r.fetcher.FetchEntities(ctx, []string{placeID})
	if err != nil {
		return nil, err
	}
	place, ok := entities[placeID]
	if !ok {
		return nil, nil
	}

	hq := &companies.Headquarters{
		Raw:         place.Label,
		Place:       place.Label,
		Coordinates: place.Coordinates,
	}

	// Batch the declared country with the first located-in parent.
	var want []string
	if place.CountryID != "" {
		want = append(want, place.CountryID)
	}
	if place.LocatedIn != "" {
		want = append(want, place.LocatedIn)
	}
	fetched := map[string]Entity{}
	if len(want) > 0 {
		if fetched, err = r.fetcher.FetchEntities(ctx, want); err != nil {
			return nil, err
		}
	}

	if c, ok := fetched[place.CountryID]; ok && c.Label != "" {
		hq.Country = &c.Label
	}

	// Follow located-in parents while they are not cities, up to maxDepth.
	var chain []Entity
	nextID := place.LocatedIn
	for depth := 0; depth < r.maxDepth && nextID != ""; depth++ {
		ent, ok := fetched[nextID]
		if !ok {
			more, err := r.fetcher.FetchEntities(ctx, []string{nextID})
			if err != nil {
				break // keep whatever classified so far
			}
			if ent, ok = more[nextID]; !ok {
				break
			}
		}
		chain = append(chain, ent)
		if r.isCity(ent) {
			break
		}
		nextID = ent.LocatedIn
	}

	for i := range chain {
		hop := chain[i]
		if hop.Label == "" {
			continue
		}
		if r.isCity(hop) {
			if hq.City == nil {
				hq.City = &chain[i].Label
			}
			continue
		}
		if hq.Region == nil && (hq.Country == nil || hop.Label != *hq.Country) {
			hq.Region = &chain[i].Label
		}
	}

	SplitLabel(hq, place.Label)
	return hq, nil
}

func (r *Resolver) isCity(e Entity) bool {
	for _, id := range e.InstanceOf {
		if r.cityMarkers[id] {
			return true
		}
	}
	return false
}

// SplitLabel fills missing city/region/country from a comma-separated
// display label: first segment is the city, last segment the country, and
// the middle segment the region when a third segment exists. It only fills
// gaps and never overwrites a value already resolved from the graph.
func SplitLabel(hq *companies.Headquarters, label string) {
	parts := strings.Split(label, ",")
	segments := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	if len(segments) == 0 {
		return
	}
	if hq.City == nil {
		hq.City = &segments[0]
	}
	if len(segments) >= 2 && hq.Country == nil {
		hq.Country = &segments[len(segments)-1]
	}
	if len(segments) >= 3 && hq.Region == nil {
		hq.Region = &segments[1]
	}
}
