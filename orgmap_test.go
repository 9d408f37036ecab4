package orgmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/places"
	"github.com/agentstation/orgmap/pkg/reconcile"
	"github.com/agentstation/orgmap/pkg/temporal"
	"github.com/agentstation/orgmap/pkg/tickers"
)

type stubStructured struct {
	id    string
	facts *reconcile.StructuredFacts
	err   error
}

func (s *stubStructured) SearchEntity(_ context.Context, _ string) (string, error) {
	if s.id == "" {
		return "", errors.NewNotFoundError("entity", "query")
	}
	return s.id, nil
}

func (s *stubStructured) Facts(_ context.Context, _ string) (*reconcile.StructuredFacts, error) {
	return s.facts, s.err
}

type stubFreeText struct {
	title    string
	entityID string
	facts    *reconcile.FreeTextFacts
}

func (s *stubFreeText) Search(_ context.Context, _ string) (string, error) {
	if s.title == "" {
		return "", errors.NewNotFoundError("article", "query")
	}
	return s.title, nil
}

func (s *stubFreeText) EntityID(_ context.Context, _ string) (string, error) {
	if s.entityID == "" {
		return "", errors.NewNotFoundError("article", "query")
	}
	return s.entityID, nil
}

func (s *stubFreeText) Facts(_ context.Context, _ string) (*reconcile.FreeTextFacts, error) {
	return s.facts, nil
}

type stubQuotes struct{ quote *companies.Quote }

func (s *stubQuotes) Quote(_ context.Context, _ string) (*companies.Quote, error) {
	if s.quote == nil {
		return nil, errors.NewNotFoundError("quote", "symbol")
	}
	return s.quote, nil
}

type stubRegistry struct{ reg *companies.Registration }

func (s *stubRegistry) Search(_ context.Context, _ string) (*companies.Registration, error) {
	if s.reg == nil {
		return nil, errors.NewNotFoundError("registration", "query")
	}
	return s.reg, nil
}

type stubLinks struct{ links []string }

func (s *stubLinks) Links(_ context.Context, _ string) ([]string, error) {
	return s.links, nil
}

type stubFetcher struct{ entities map[string]places.Entity }

func (f *stubFetcher) FetchEntities(_ context.Context, ids []string) (map[string]places.Entity, error) {
	out := make(map[string]places.Entity)
	for _, id := range ids {
		if e, ok := f.entities[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func newStubClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithStructuredSource(&stubStructured{
			id: "Q95",
			facts: &reconcile.StructuredFacts{
				Website:        "https://acme.example",
				HeadquartersID: "Q62",
				Industries:     []string{"information technology"},
				Employees:      []temporal.Statement{{Value: "182502", PointInTime: "2024-06-01"}},
				Tickers:        []tickers.Candidate{{Symbol: "ACME", Exchange: "NASDAQ"}},
			},
		}),
		WithFreeTextSource(&stubFreeText{
			title:    "Acme Corporation",
			entityID: "Q95",
			facts: &reconcile.FreeTextFacts{
				Name:       "Acme Corporation",
				Industries: []string{"Internet"},
			},
		}),
		WithQuoteSource(&stubQuotes{}),
		WithRegistrySource(&stubRegistry{reg: &companies.Registration{Jurisdiction: "us_de", Number: "1234567"}}),
		WithLinkSource(&stubLinks{links: []string{"https://x.com/acme"}}),
		WithPlaceFetcher(&stubFetcher{entities: map[string]places.Entity{
			"Q62": {ID: "Q62", Label: "San Francisco", InstanceOf: []string{"Q515"}, CountryID: "Q30"},
			"Q30": {ID: "Q30", Label: "United States"},
		}}),
	}
	c, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestLookupName(t *testing.T) {
	c := newStubClient(t)

	record, prov, err := c.LookupName(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, "Acme Corporation", record.Name)
	assert.Equal(t, "https://acme.example", record.Website)
	assert.Equal(t, []string{"Internet", "information technology"}, record.Industry)

	require.NotNil(t, record.Employees)
	require.NotNil(t, record.Employees.Count)
	assert.Equal(t, 182502, *record.Employees.Count)

	require.NotNil(t, record.Headquarters)
	require.NotNil(t, record.Headquarters.Country)
	assert.Equal(t, "United States", *record.Headquarters.Country)

	// Quote source empty, so only the ranked symbol survives.
	require.NotNil(t, record.Financials)
	assert.Equal(t, "ACME", record.Financials.Symbol)

	require.NotNil(t, record.Registry)
	assert.Equal(t, "us_de", record.Registry.Jurisdiction)

	require.NotNil(t, record.Social)
	assert.Equal(t, "https://x.com/acme", record.Social[companies.PlatformX])

	src, ok := prov.Source(reconcile.FieldWebsite)
	require.True(t, ok)
	assert.Equal(t, reconcile.SourceStructured, src)
}

func TestLookupDomain(t *testing.T) {
	c := newStubClient(t)

	record, _, err := c.LookupDomain(context.Background(), "https://www.acme.example/about")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", record.Name)
}

func TestLookupNotFound(t *testing.T) {
	c := newStubClient(t,
		WithStructuredSource(&stubStructured{}),
		WithFreeTextSource(&stubFreeText{}),
	)

	_, _, err := c.LookupName(context.Background(), "completely unknown llc")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLookupFreeTextOnly(t *testing.T) {
	c := newStubClient(t,
		WithStructuredSource(&stubStructured{}),
		WithFreeTextSource(&stubFreeText{
			title: "Tiny Co",
			facts: &reconcile.FreeTextFacts{Name: "Tiny Co", EmployeesText: "about 120 people"},
		}),
	)

	record, prov, err := c.LookupName(context.Background(), "tiny co")
	require.NoError(t, err)
	assert.Equal(t, "Tiny Co", record.Name)
	require.NotNil(t, record.Employees)
	require.NotNil(t, record.Employees.Count)
	assert.Equal(t, 120, *record.Employees.Count)

	src, _ := prov.Source(reconcile.FieldEmployees)
	assert.Equal(t, reconcile.SourceFreeText, src)
}

func TestLookupInvalidInput(t *testing.T) {
	c := newStubClient(t)

	_, _, err := c.LookupName(context.Background(), "   ")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	_, _, err = c.LookupDomain(context.Background(), "")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestOptionValidation(t *testing.T) {
	_, err := New(WithMaxDepth(0))
	assert.Error(t, err)
	_, err = New(WithRanking(nil))
	assert.Error(t, err)
	_, err = New(WithTaxonomy(nil))
	assert.Error(t, err)
}
