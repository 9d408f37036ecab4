package reconcile

import (
	"github.com/agentstation/orgmap/pkg/temporal"
	"github.com/agentstation/orgmap/pkg/tickers"
)

// StructuredFacts is the normalized output of the knowledge-graph
// collaborator for one organization. Reference ids have already been
// resolved to display labels by the collaborator, except the headquarters
// place, which stays an id so the hierarchy resolver can walk its located-in
// chain. The value is transient and consumed once per request.
type StructuredFacts struct {
	Website        string               `json:"website,omitempty"`
	Employees      []temporal.Statement `json:"employees,omitempty"`       // competing dated headcount statements
	Industries     []string             `json:"industries,omitempty"`      // resolved industry labels
	Types          []string             `json:"types,omitempty"`           // resolved taxonomy type labels
	HeadquartersID string               `json:"headquarters_id,omitempty"` // place entity id
	Tickers        []tickers.Candidate  `json:"tickers,omitempty"`
}

// Empty reports whether the payload carries nothing usable.
func (f *StructuredFacts) Empty() bool {
	return f == nil || (f.Website == "" && len(f.Employees) == 0 &&
		len(f.Industries) == 0 && len(f.Types) == 0 &&
		f.HeadquartersID == "" && len(f.Tickers) == 0)
}

// FreeTextFacts is the normalized output of the free-text collaborator:
// the same conceptual fields as StructuredFacts, but extracted from rendered
// prose. All fields are individually optional.
type FreeTextFacts struct {
	Name             string   `json:"name,omitempty"`
	Website          string   `json:"website,omitempty"`
	EmployeesText    string   `json:"employees_text,omitempty"`
	HeadquartersText string   `json:"headquarters_text,omitempty"`
	Type             string   `json:"type,omitempty"`
	Industries       []string `json:"industries,omitempty"`
	Specialties      []string `json:"specialties,omitempty"`
}
