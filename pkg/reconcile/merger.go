package reconcile

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/orgmap/internal/utils/ptr"
	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/employees"
	"github.com/agentstation/orgmap/pkg/logging"
	"github.com/agentstation/orgmap/pkg/places"
	"github.com/agentstation/orgmap/pkg/social"
	"github.com/agentstation/orgmap/pkg/temporal"
	"github.com/agentstation/orgmap/pkg/tickers"
)

// Input carries everything the merger consumes for one request. Structured
// and FreeText may each be nil; the facade guarantees at least one is
// present before merging (otherwise the whole lookup is a hard failure).
// Quote, Registration, and Links are pre-fetched by the caller so the merge
// itself performs no I/O beyond the bounded headquarters walk.
type Input struct {
	Query        string
	Structured   *StructuredFacts
	FreeText     *FreeTextFacts
	Quote        *companies.Quote
	Registration *companies.Registration
	Links        []string
}

// Merger combines both source payloads into one canonical Record. It is the
// only writer of the Record; helpers are invoked as needed and every field
// group resolves independently, so a source that failed for one field never
// blocks another.
type Merger struct {
	places   *places.Resolver
	ranking  tickers.Ranking
	taxonomy social.Taxonomy
	logger   zerolog.Logger
}

// NewMerger creates a merger. The places resolver may be nil when no
// knowledge graph is available; headquarters then resolve from free text
// only.
func NewMerger(resolver *places.Resolver, ranking tickers.Ranking, taxonomy social.Taxonomy) *Merger {
	if ranking == nil {
		ranking = tickers.DefaultRanking()
	}
	if taxonomy == nil {
		taxonomy = social.DefaultTaxonomy()
	}
	return &Merger{
		places:   resolver,
		ranking:  ranking,
		taxonomy: taxonomy,
		logger:   *logging.Default(),
	}
}

// WithLogger replaces the merger's logger.
func (m *Merger) WithLogger(logger zerolog.Logger) *Merger {
	m.logger = logger
	return m
}

// Merge builds the canonical record. The context is only consulted by the
// headquarters walk, which is backed by the collaborator's batched fetch;
// everything else is pure computation over in.
func (m *Merger) Merge(ctx context.Context, in Input) (*companies.Record, Provenance) {
	st := in.Structured
	ft := in.FreeText
	if ft == nil {
		ft = &FreeTextFacts{}
	}

	record := &companies.Record{}
	prov := make(Provenance)

	// Name: free-text display name, else the original query.
	if ft.Name != "" {
		record.Name = ft.Name
		prov.record(FieldName, SourceFreeText)
	} else {
		record.Name = in.Query
		prov.record(FieldName, SourceQuery)
	}

	// Website: structured wins when present and non-empty.
	switch {
	case st != nil && st.Website != "":
		record.Website = st.Website
		prov.record(FieldWebsite, SourceStructured)
	case ft.Website != "":
		record.Website = ft.Website
		prov.record(FieldWebsite, SourceFreeText)
	}

	// Type: first structured type label, else free text.
	if st != nil {
		for _, label := range st.Types {
			if label != "" {
				record.Type = ptr.To(label)
				prov.record(FieldType, SourceStructured)
				break
			}
		}
	}
	if record.Type == nil && ft.Type != "" {
		record.Type = ptr.To(ft.Type)
		prov.record(FieldType, SourceFreeText)
	}

	// Employees: the most recent structured statement, else parsed prose.
	if st != nil {
		if snapshot := snapshotFromStatements(st.Employees); !snapshot.Empty() {
			record.Employees = snapshot
			prov.record(FieldEmployees, SourceStructured)
		}
	}
	if record.Employees == nil {
		if snapshot := employees.ParseText(ft.EmployeesText); !snapshot.Empty() {
			record.Employees = snapshot
			prov.record(FieldEmployees, SourceFreeText)
		}
	}

	// Headquarters: graph walk when the structured payload references a
	// place entity; a resolver failure is soft and falls through to the
	// free-text label.
	record.Headquarters = m.mergeHeadquarters(ctx, st, ft, prov)

	// Industry and specialties: union, free-text items first.
	var structuredIndustries []string
	if st != nil {
		structuredIndustries = st.Industries
	}
	record.Industry = union(ft.Industries, structuredIndustries)
	if len(record.Industry) > 0 {
		prov.record(FieldIndustry, industrySource(structuredIndustries))
	}
	record.Specialties = union(ft.Specialties, nil)
	if len(record.Specialties) > 0 {
		prov.record(FieldSpecialties, SourceFreeText)
	}

	// Financials: the pre-fetched quote, else just the primary symbol.
	switch {
	case in.Quote != nil:
		q := *in.Quote
		record.Financials = &q
		prov.record(FieldFinancials, SourceMarkets)
	case st != nil && len(st.Tickers) > 0:
		if symbol := m.ranking.ChoosePrimary(st.Tickers); symbol != "" {
			record.Financials = &companies.Quote{Symbol: symbol}
			prov.record(FieldFinancials, SourceStructured)
		}
	}

	if in.Registration != nil {
		r := *in.Registration
		record.Registry = &r
		prov.record(FieldRegistry, SourceRegistry)
	}

	if profiles := m.taxonomy.Collect(in.Links); len(profiles) > 0 {
		record.Social = profiles
		prov.record(FieldSocial, SourceLinks)
	}

	return record, prov
}

// mergeHeadquarters resolves the structured place reference first and falls
// back to structuring the free-text label. The fallback only fills gaps,
// never overwrites a graph-resolved value.
func (m *Merger) mergeHeadquarters(ctx context.Context, st *StructuredFacts, ft *FreeTextFacts, prov Provenance) *companies.Headquarters {
	if st != nil && st.HeadquartersID != "" && m.places != nil {
		hq, err := m.places.Resolve(ctx, st.HeadquartersID)
		if err != nil {
			m.logger.Warn().
				Err(err).
				Str("place_id", st.HeadquartersID).
				Msg("Headquarters walk failed, falling back to free text")
		} else if hq != nil {
			prov.record(FieldHeadquarters, SourceStructured)
			return hq
		}
	}

	if ft.HeadquartersText == "" {
		return nil
	}
	hq := &companies.Headquarters{
		Raw:   ft.HeadquartersText,
		Place: ft.HeadquartersText,
	}
	places.SplitLabel(hq, ft.HeadquartersText)
	prov.record(FieldHeadquarters, SourceFreeText)
	return hq
}

// snapshotFromStatements reduces the competing dated statements to the most
// recent one and converts it into a snapshot. Returns nil when nothing
// usable survives.
func snapshotFromStatements(statements []temporal.Statement) *companies.EmployeeSnapshot {
	latest := temporal.PickLatest(statements)
	if latest == nil {
		return nil
	}

	snapshot := &companies.EmployeeSnapshot{}
	if count, ok := statementCount(latest.Value); ok {
		snapshot.Count = ptr.To(count)
	}
	if asOf := qualifierDate(latest.PointInTime); asOf != nil {
		snapshot.AsOf = asOf
	}
	if snapshot.Empty() {
		return nil
	}
	return snapshot
}

// statementCount reads a knowledge-graph quantity value ("182502",
// "+182502") as an integer headcount.
func statementCount(value string) (int, bool) {
	cleaned := strings.TrimLeft(strings.TrimSpace(value), "+")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}

// qualifierDate converts a point-in-time qualifier to a UTC calendar date.
// Only the leading digits matter: absent month/day digits normalize to
// January 1st, and anything that does not yield a valid date is absent.
func qualifierDate(qualifier string) *utc.Time {
	var digits []byte
	for i := 0; i < len(qualifier) && len(digits) < 8; i++ {
		if qualifier[i] >= '0' && qualifier[i] <= '9' {
			digits = append(digits, qualifier[i])
		}
	}
	if len(digits) < 4 {
		return nil
	}
	year, _ := strconv.Atoi(string(digits[:4]))
	month, day := 1, 1
	if len(digits) >= 6 {
		if m, _ := strconv.Atoi(string(digits[4:6])); m >= 1 && m <= 12 {
			month = m
		}
	}
	if len(digits) >= 8 {
		if d, _ := strconv.Atoi(string(digits[6:8])); d >= 1 && d <= 31 {
			day = d
		}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day { // overflow like Feb 30
		t = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	}
	return ptr.To(utc.New(t))
}

// union concatenates two ordered lists, trimming whitespace and dropping
// exact duplicates; first-list items keep their positions.
func union(first, second []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range [][]string{first, second} {
		for _, item := range list {
			trimmed := strings.TrimSpace(item)
			if trimmed == "" || seen[trimmed] {
				continue
			}
			seen[trimmed] = true
			out = append(out, trimmed)
		}
	}
	return out
}

// industrySource reports which source contributed the industry union. Both
// contributing is recorded as structured, the precedence winner.
func industrySource(structured []string) SourceID {
	if len(structured) > 0 {
		return SourceStructured
	}
	return SourceFreeText
}
