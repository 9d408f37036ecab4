package wikipedia

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/orgmap/pkg/reconcile"
)

// parseInfobox extracts the organization summary table from a rendered
// article. Row labels vary across articles, so matching is on a normalized
// lowercase label. Every field is best-effort; an article with no summary
// table still yields facts carrying the article title as the name.
func parseInfobox(doc *goquery.Document, title string) *reconcile.FreeTextFacts {
	facts := &reconcile.FreeTextFacts{Name: title}

	infobox := doc.Find("table.infobox").First()
	if infobox.Length() == 0 {
		return facts
	}

	if caption := clean(infobox.Find("caption").First().Text()); caption != "" {
		facts.Name = caption
	}

	infobox.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		cell := row.Find("td").First()
		if header.Length() == 0 || cell.Length() == 0 {
			return
		}

		switch normalizeLabel(header.Text()) {
		case "industry", "industries":
			facts.Industries = append(facts.Industries, cellItems(cell)...)
		case "products", "services", "specialties":
			facts.Specialties = append(facts.Specialties, cellItems(cell)...)
		case "number of employees", "employees":
			facts.EmployeesText = clean(cell.Text())
		case "headquarters", "headquarters location", "location":
			if facts.HeadquartersText == "" {
				facts.HeadquartersText = headquartersText(cell)
			}
		case "type", "company type":
			facts.Type = clean(cell.Text())
		case "website", "url":
			if href, ok := cell.Find("a").First().Attr("href"); ok {
				facts.Website = href
			} else {
				facts.Website = clean(cell.Text())
			}
		}
	})

	return facts
}

// cellItems splits a cell holding a list. List markup wins; a plain cell is
// split on commas.
func cellItems(cell *goquery.Selection) []string {
	var items []string
	cell.Find("li").Each(func(_ int, li *goquery.Selection) {
		if item := clean(li.Text()); item != "" {
			items = append(items, item)
		}
	})
	if len(items) > 0 {
		return items
	}
	for _, part := range strings.Split(cell.Text(), ",") {
		if item := clean(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// headquartersText flattens a headquarters cell, joining its lines with
// commas so the comma-split fallback can structure it.
func headquartersText(cell *goquery.Selection) string {
	html, err := cell.Html()
	if err != nil {
		return clean(cell.Text())
	}

	html = strings.ReplaceAll(html, "<br>", ", ")
	html = strings.ReplaceAll(html, "<br/>", ", ")
	html = strings.ReplaceAll(html, "<br />", ", ")
	frag, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return clean(cell.Text())
	}

	// Collapse any duplicate separators the markup rewrite produced.
	var parts []string
	for _, part := range strings.Split(frag.Text(), ",") {
		if p := clean(part); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// normalizeLabel lowercases a row label and strips footnote brackets.
func normalizeLabel(s string) string {
	s = strings.ToLower(clean(s))
	if i := strings.IndexByte(s, '['); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// clean trims whitespace, including the non-breaking spaces rendered markup
// is full of.
func clean(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
