// Package opencorp looks up official registry facts (jurisdiction and
// registration number) for an organization by name. The lookup is
// best-effort; a miss or outage nulls the registry field, nothing else.
package opencorp

import (
	"context"
	"net/url"

	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/errors"
)

const (
	sourceName  = "opencorp"
	apiEndpoint = "https://api.opencorporates.com/v0.4/companies/search"
)

// Client queries the company registry aggregator.
type Client struct {
	transport *transport.Client
	endpoint  string
}

// New creates a registry client sharing the given transport.
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

// Search returns the best registry match for the organization name.
// Inactive registrations are skipped; the first active match wins.
func (c *Client) Search(ctx context.Context, name string) (*companies.Registration, error) {
	params := url.Values{
		"q":        {name},
		"order":    {"score"},
		"per_page": {"5"},
	}

	var result searchResponse
	if err := c.transport.GetJSON(ctx, sourceName, c.endpoint+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	for _, wrapper := range result.Results.Companies {
		co := wrapper.Company
		if co.Inactive || co.JurisdictionCode == "" || co.CompanyNumber == "" {
			continue
		}
		return &companies.Registration{
			Jurisdiction: co.JurisdictionCode,
			Number:       co.CompanyNumber,
		}, nil
	}
	return nil, errors.NewNotFoundError("registration", name)
}

type searchResponse struct {
	Results struct {
		Companies []struct {
			Company struct {
				Name             string `json:"name"`
				JurisdictionCode string `json:"jurisdiction_code"`
				CompanyNumber    string `json:"company_number"`
				Inactive         bool   `json:"inactive"`
			} `json:"company"`
		} `json:"companies"`
	} `json:"results"`
}
