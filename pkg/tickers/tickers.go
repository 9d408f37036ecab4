// Package tickers selects one primary trading symbol when an organization is
// listed on several exchanges. Preference is a business rule, not a truth:
// it lives in an explicit Ranking value so callers and tests can substitute
// their own ordering.
package tickers

import (
	"strings"
)

// Candidate is a trading symbol paired with the label of the exchange it
// trades on. The exchange label may be empty when the source did not resolve
// one.
type Candidate struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Exchange string `json:"exchange,omitempty" yaml:"exchange,omitempty"`
}

// Ranking is an ordered list of exchange names, most preferred first. A
// candidate matches a ranked entry when its exchange label contains the
// entry case-insensitively.
type Ranking []string

// DefaultRanking returns the standard exchange preference: major US
// exchanges first, then major non-US exchanges.
func DefaultRanking() Ranking {
	return Ranking{
		"NASDAQ",
		"New York Stock Exchange",
		"NYSE",
		"London Stock Exchange",
		"Tokyo Stock Exchange",
		"Euronext",
		"Frankfurt Stock Exchange",
		"Hong Kong Stock Exchange",
		"Toronto Stock Exchange",
	}
}

// ChoosePrimary returns the symbol of the first candidate whose exchange
// label matches the highest-ranked exchange. Input order breaks ties within
// the same exchange. When no candidate matches any ranked exchange the first
// candidate wins; empty input yields "".
func (r Ranking) ChoosePrimary(candidates []Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	for _, exchange := range r {
		needle := strings.ToLower(exchange)
		for _, c := range candidates {
			if c.Exchange != "" && strings.Contains(strings.ToLower(c.Exchange), needle) {
				return c.Symbol
			}
		}
	}
	return candidates[0].Symbol
}
