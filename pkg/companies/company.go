// Package companies defines the canonical record types produced by the
// reconciliation engine. A Record is built once per lookup, is never
// persisted, and is not mutated after construction.
package companies

import (
	"github.com/agentstation/utc"
)

// Platform identifies a known social platform.
type Platform string

// String returns the string representation of a Platform.
func (p Platform) String() string {
	return string(p)
}

// Known social platforms.
const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformX         Platform = "x"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformGitHub    Platform = "github"
	PlatformTikTok    Platform = "tiktok"
)

// Record is the canonical, schema-stable description of one organization,
// merged from every source that had anything to say about it.
type Record struct {
	Name         string              `json:"name" yaml:"name"`                                   // Display name (free text source, else the lookup query)
	Website      string              `json:"website,omitempty" yaml:"website,omitempty"`         // Official website URL
	Employees    *EmployeeSnapshot   `json:"employees,omitempty" yaml:"employees,omitempty"`     // Most recent headcount
	Industry     []string            `json:"industry,omitempty" yaml:"industry,omitempty"`       // Ordered, de-duplicated industry labels
	Headquarters *Headquarters       `json:"headquarters,omitempty" yaml:"headquarters,omitempty"`
	Type         *string             `json:"type,omitempty" yaml:"type,omitempty"`               // Taxonomy type (e.g. "public company")
	Specialties  []string            `json:"specialties,omitempty" yaml:"specialties,omitempty"` // Ordered, de-duplicated specialty labels
	Financials   *Quote              `json:"financials,omitempty" yaml:"financials,omitempty"`   // Primary ticker quote
	Registry     *Registration       `json:"registry,omitempty" yaml:"registry,omitempty"`       // Corporate registry entry
	Social       map[Platform]string `json:"social,omitempty" yaml:"social,omitempty"`           // First link observed per platform
}

// EmployeeSnapshot is a headcount paired with the date it was true.
// At least one of the two fields is set; an empty snapshot collapses to nil
// rather than {nil, nil}.
type EmployeeSnapshot struct {
	Count *int      `json:"count,omitempty" yaml:"count,omitempty"`
	AsOf  *utc.Time `json:"as_of,omitempty" yaml:"as_of,omitempty"`
}

// Empty reports whether the snapshot carries no information at all.
func (s *EmployeeSnapshot) Empty() bool {
	return s == nil || (s.Count == nil && s.AsOf == nil)
}

// Headquarters is a best-effort classification of an organization's
// headquarters location. Raw and Place always carry the unresolved display
// label; City, Region, and Country are filled when the located-in chain or
// the comma fallback can classify them.
type Headquarters struct {
	Raw         string       `json:"raw,omitempty" yaml:"raw,omitempty"`         // Display label as received
	Place       string       `json:"place,omitempty" yaml:"place,omitempty"`     // Unresolved display label
	City        *string      `json:"city,omitempty" yaml:"city,omitempty"`
	Region      *string      `json:"region,omitempty" yaml:"region,omitempty"`
	Country     *string      `json:"country,omitempty" yaml:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Quote is a best-effort market snapshot for the primary trading symbol.
type Quote struct {
	Symbol    string   `json:"symbol" yaml:"symbol"`
	Price     *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	MarketCap *float64 `json:"market_cap,omitempty" yaml:"market_cap,omitempty"`
}

// Registration is a corporate registry entry.
type Registration struct {
	Jurisdiction string `json:"jurisdiction" yaml:"jurisdiction"`
	Number       string `json:"number" yaml:"number"`
}
