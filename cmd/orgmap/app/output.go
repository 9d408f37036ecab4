package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/reconcile"
)

var titleCaser = cases.Title(language.English)

// renderRecord writes the record in the configured output format.
func (a *App) renderRecord(w io.Writer, record *companies.Record, prov reconcile.Provenance) error {
	switch strings.ToLower(a.config.Format) {
	case "", "table":
		return renderTable(w, record, prov)
	case "json":
		payload := outputPayload(record, prov)
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return errors.NewParseError("json", "output", "encode record", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		payload := outputPayload(record, prov)
		data, err := yaml.Marshal(payload)
		if err != nil {
			return errors.NewParseError("yaml", "output", "encode record", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return &errors.ValidationError{Field: "format", Message: "must be table, json, or yaml"}
	}
}

// outputPayload shapes the machine-readable output. Provenance is attached
// only when requested.
func outputPayload(record *companies.Record, prov reconcile.Provenance) any {
	if prov == nil {
		return record
	}
	return struct {
		Record     *companies.Record    `json:"record" yaml:"record"`
		Provenance reconcile.Provenance `json:"provenance" yaml:"provenance"`
	}{record, prov}
}

// renderTable writes the human-readable view. Absent fields are omitted
// entirely rather than rendered as empty rows.
func renderTable(w io.Writer, record *companies.Record, prov reconcile.Provenance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(tw, "%s:\t%s\n", label, value)
	}

	row("Name", record.Name)
	row("Website", record.Website)
	if record.Type != nil {
		row("Type", titleCaser.String(*record.Type))
	}
	row("Industry", strings.Join(record.Industry, ", "))
	row("Specialties", strings.Join(record.Specialties, ", "))

	if !record.Employees.Empty() {
		var parts []string
		if record.Employees.Count != nil {
			parts = append(parts, fmt.Sprintf("%d", *record.Employees.Count))
		}
		if record.Employees.AsOf != nil {
			parts = append(parts, "as of "+record.Employees.AsOf.Format("January 2006"))
		}
		row("Employees", strings.Join(parts, " "))
	}

	if hq := record.Headquarters; hq != nil {
		var parts []string
		for _, p := range []*string{hq.City, hq.Region, hq.Country} {
			if p != nil {
				parts = append(parts, *p)
			}
		}
		if len(parts) == 0 && hq.Place != "" {
			parts = append(parts, hq.Place)
		}
		row("Headquarters", strings.Join(parts, ", "))
	}

	if fin := record.Financials; fin != nil {
		value := fin.Symbol
		if fin.Price != nil {
			value = fmt.Sprintf("%s at %.2f", value, *fin.Price)
		}
		if fin.MarketCap != nil {
			value = fmt.Sprintf("%s (market cap %.0f)", value, *fin.MarketCap)
		}
		row("Listed", value)
	}

	if reg := record.Registry; reg != nil {
		row("Registered", fmt.Sprintf("%s %s", strings.ToUpper(reg.Jurisdiction), reg.Number))
	}

	if len(record.Social) > 0 {
		platforms := make([]string, 0, len(record.Social))
		for platform := range record.Social {
			platforms = append(platforms, string(platform))
		}
		sort.Strings(platforms)
		for _, platform := range platforms {
			row(titleCaser.String(platform), record.Social[companies.Platform(platform)])
		}
	}

	if len(prov) > 0 {
		fields := make([]string, 0, len(prov))
		for field := range prov {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		fmt.Fprintln(tw, "\nSources:")
		for _, field := range fields {
			fmt.Fprintf(tw, "  %s:\t%s\n", field, prov[field])
		}
	}

	return tw.Flush()
}
