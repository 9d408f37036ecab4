package places_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/places"
)

// mapFetcher backs the resolver with a request-scoped entity map.
type mapFetcher struct {
	entities map[string]places.Entity
	calls    int
}

func (f *mapFetcher) FetchEntities(_ context.Context, ids []string) (map[string]places.Entity, error) {
	f.calls++
	out := make(map[string]places.Entity)
	for _, id := range ids {
		if e, ok := f.entities[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func strPtr(t *testing.T, s *string) string {
	t.Helper()
	require.NotNil(t, s)
	return *s
}

func TestResolveUnknownPlace(t *testing.T) {
	r := places.NewResolver(&mapFetcher{entities: map[string]places.Entity{}})
	hq, err := r.Resolve(context.Background(), "Q404")
	require.NoError(t, err)
	assert.Nil(t, hq)
}

func TestResolveCityFirstHop(t *testing.T) {
	fetcher := &mapFetcher{entities: map[string]places.Entity{
		"Q3095": {
			ID:          "Q3095",
			Label:       "Mountain View",
			InstanceOf:  []string{"Q515"},
			LocatedIn:   "Q99",
			CountryID:   "Q30",
			Coordinates: &companies.Coordinates{Lat: 37.39, Lon: -122.08},
		},
		"Q99": {ID: "Q99", Label: "California", InstanceOf: []string{"Q35657"}},
		"Q30": {ID: "Q30", Label: "United States"},
	}}

	// The place itself is a city; its parent is the region.
	hq, err := places.NewResolver(fetcher).Resolve(context.Background(), "Q3095")
	require.NoError(t, err)
	require.NotNil(t, hq)

	assert.Equal(t, "Mountain View", hq.Place)
	assert.Equal(t, "Mountain View", hq.Raw)
	assert.Equal(t, "California", strPtr(t, hq.Region))
	assert.Equal(t, "United States", strPtr(t, hq.Country))
	require.NotNil(t, hq.Coordinates)
	assert.InDelta(t, 37.39, hq.Coordinates.Lat, 0.001)
	// Label has no commas, so the fallback fills the city from the label.
	assert.Equal(t, "Mountain View", strPtr(t, hq.City))
}

func TestResolveSecondHopCity(t *testing.T) {
	// A district located in a city located in a region: the walk stops at
	// the city on the second hop.
	fetcher := &mapFetcher{entities: map[string]places.Entity{
		"Qdistrict": {ID: "Qdistrict", Label: "Shibuya", LocatedIn: "Qtokyo", CountryID: "Qjp"},
		"Qtokyo":    {ID: "Qtokyo", Label: "Tokyo", InstanceOf: []string{"Q515"}, LocatedIn: "Qkanto"},
		"Qkanto":    {ID: "Qkanto", Label: "Kanto"},
		"Qjp":       {ID: "Qjp", Label: "Japan"},
	}}

	hq, err := places.NewResolver(fetcher).Resolve(context.Background(), "Qdistrict")
	require.NoError(t, err)
	require.NotNil(t, hq)
	assert.Equal(t, "Tokyo", strPtr(t, hq.City))
	assert.Equal(t, "Japan", strPtr(t, hq.Country))
	assert.Nil(t, hq.Region)
}

func TestResolveDepthLimit(t *testing.T) {
	// The chain keeps going, but the walk must stop after maxDepth hops.
	fetcher := &mapFetcher{entities: map[string]places.Entity{
		"Qa": {ID: "Qa", Label: "A", LocatedIn: "Qb"},
		"Qb": {ID: "Qb", Label: "B", LocatedIn: "Qc"},
		"Qc": {ID: "Qc", Label: "C", LocatedIn: "Qd"},
		"Qd": {ID: "Qd", Label: "City D", InstanceOf: []string{"Q515"}},
	}}

	hq, err := places.NewResolver(fetcher).Resolve(context.Background(), "Qa")
	require.NoError(t, err)
	require.NotNil(t, hq)
	// Two hops (B, C) visited; the city at depth three is never reached,
	// so the city falls back to the place's own label.
	assert.Equal(t, "A", strPtr(t, hq.City))
	assert.Equal(t, "B", strPtr(t, hq.Region))

	// A deeper resolver reaches it.
	deep, err := places.NewResolver(fetcher).WithMaxDepth(3).Resolve(context.Background(), "Qa")
	require.NoError(t, err)
	require.NotNil(t, deep)
	assert.Equal(t, "City D", strPtr(t, deep.City))
}

func TestResolveFallbackFromLabel(t *testing.T) {
	// No graph data beyond the place label: everything comes from commas.
	fetcher := &mapFetcher{entities: map[string]places.Entity{
		"Qhq": {ID: "Qhq", Label: "Mountain View, California, United States"},
	}}

	hq, err := places.NewResolver(fetcher).Resolve(context.Background(), "Qhq")
	require.NoError(t, err)
	require.NotNil(t, hq)
	assert.Equal(t, "Mountain View, California, United States", hq.Place)
	assert.Equal(t, "Mountain View", strPtr(t, hq.City))
	assert.Equal(t, "California", strPtr(t, hq.Region))
	assert.Equal(t, "United States", strPtr(t, hq.Country))
}

func TestResolveFallbackNeverOverwrites(t *testing.T) {
	fetcher := &mapFetcher{entities: map[string]places.Entity{
		"Qhq": {
			ID:        "Qhq",
			Label:     "SomewhereElse, Wrongland",
			LocatedIn: "Qcity",
			CountryID: "Qus",
		},
		"Qcity": {ID: "Qcity", Label: "Graph City", InstanceOf: []string{"Q486972"}},
		"Qus":   {ID: "Qus", Label: "United States"},
	}}

	hq, err := places.NewResolver(fetcher).Resolve(context.Background(), "Qhq")
	require.NoError(t, err)
	require.NotNil(t, hq)
	assert.Equal(t, "Graph City", strPtr(t, hq.City))
	assert.Equal(t, "United States", strPtr(t, hq.Country))
}

func TestSplitLabelTwoSegments(t *testing.T) {
	hq := &companies.Headquarters{}
	places.SplitLabel(hq, "Paris, France")
	assert.Equal(t, "Paris", strPtr(t, hq.City))
	assert.Equal(t, "France", strPtr(t, hq.Country))
	assert.Nil(t, hq.Region)
}

func TestResolveBatchesLookups(t *testing.T) {
	fetcher := &mapFetcher{entities: map[string]places.Entity{
		"Qhq": {ID: "Qhq", Label: "HQ", LocatedIn: "Qcity", CountryID: "Qus"},
		"Qcity": {ID: "Qcity", Label: "City", InstanceOf: []string{"Q515"}},
		"Qus":   {ID: "Qus", Label: "United States"},
	}}

	_, err := places.NewResolver(fetcher).Resolve(context.Background(), "Qhq")
	require.NoError(t, err)
	// Place lookup, then one combined country+parent batch.
	assert.Equal(t, 2, fetcher.calls)
}
