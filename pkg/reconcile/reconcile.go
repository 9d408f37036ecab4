// Package reconcile merges partial, disagreeing descriptions of one
// organization into a single canonical record. The structured knowledge
// graph payload wins field-by-field when it has something usable; the
// free-text payload is the fallback; list fields are unioned. A source that
// produced nothing for a field never blocks the other source from resolving
// it, and the merge is deterministic: the same inputs always produce a
// byte-identical record.
package reconcile

// SourceID identifies which collaborator supplied a field group.
type SourceID string

// String returns the string representation of a source id.
func (id SourceID) String() string {
	return string(id)
}

// Sources that can supply field groups.
const (
	// SourceStructured is the knowledge-graph payload.
	SourceStructured SourceID = "structured"
	// SourceFreeText is the free-text document payload.
	SourceFreeText SourceID = "free_text"
	// SourceQuery is the caller's original lookup query (name fallback).
	SourceQuery SourceID = "query"
	// SourceMarkets is the market-data collaborator.
	SourceMarkets SourceID = "markets"
	// SourceRegistry is the corporate-registry collaborator.
	SourceRegistry SourceID = "registry"
	// SourceLinks is the link-discovery collaborator.
	SourceLinks SourceID = "links"
)
