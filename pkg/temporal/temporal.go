// Package temporal reduces collections of dated fact statements to the one
// that is most current. Knowledge-graph properties are frequently repeated
// with different point-in-time qualifiers (one employee count per fiscal
// year, for example); PickLatest selects the statement whose qualifier sorts
// highest.
package temporal

// Statement is a fact value paired with an optional point-in-time qualifier.
// The qualifier is kept in its raw source form (e.g. "+2024-06-30T00:00:00Z"
// or just "2024"); only its leading digits matter for ordering.
type Statement struct {
	Value       string `json:"value" yaml:"value"`
	PointInTime string `json:"point_in_time,omitempty" yaml:"point_in_time,omitempty"`
}

// PickLatest returns the statement with the most recent point-in-time
// qualifier, or nil for empty input. Ordering is by the qualifier's digits
// read as YYYYMMDD: absent month/day digits count as zero, so a year-only
// qualifier sorts before a full date in the same year. Statements without a
// qualifier sort as key 0 and are only chosen when nothing dated competes.
// Ties keep the first-encountered statement, so the result is stable in
// input order.
func PickLatest(statements []Statement) *Statement {
	var best *Statement
	var bestKey int64 = -1

	for i := range statements {
		key := sortKey(statements[i].PointInTime)
		if key > bestKey {
			best = &statements[i]
			bestKey = key
		}
	}
	return best
}

// sortKey reduces a point-in-time qualifier to an int64 ordering key. It
// collects up to the first 8 digits and right-pads with zeros, so partial or
// malformed timestamps degrade to whatever digits are present rather than
// erroring. No digits at all yields 0.
func sortKey(qualifier string) int64 {
	var key int64
	digits := 0
	for i := 0; i < len(qualifier) && digits < 8; i++ {
		c := qualifier[i]
		if c < '0' || c > '9' {
			continue
		}
		key = key*10 + int64(c-'0')
		digits++
	}
	for ; digits < 8; digits++ {
		key *= 10
	}
	return key
}
