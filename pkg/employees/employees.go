// Package employees extracts a headcount and an as-of date from unstructured
// prose such as an infobox "Number of employees" cell. Inputs look like
// "182,502 (June 2024)", "~7,500 employees", or "founded 1998"; both the
// count and the date are optional and heuristic failures yield nil, never an
// error.
package employees

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/orgmap/pkg/companies"
)

// minCountDigits rejects digit runs shorter than this as headcounts. Small
// numbers in these cells are almost always ordinals or footnote markers, not
// counts; the cost is misreading legitimately tiny organizations.
const minCountDigits = 3

var (
	countRe       = regexp.MustCompile(`[0-9]{3,}`)
	parentheticRe = regexp.MustCompile(`\(([^)]*)\)\s*$`)

	isoDateRe      = regexp.MustCompile(`([0-9]{4})-([0-9]{2})-([0-9]{2})`)
	dayMonthYearRe = regexp.MustCompile(`(?i)\b([0-9]{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+([0-9]{4})\b`)
	monthDayYearRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+([0-9]{1,2}),?\s+([0-9]{4})\b`)
	monthYearRe    = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+([0-9]{4})\b`)
	bareYearRe     = regexp.MustCompile(`\b(1[89][0-9]{2}|20[0-9]{2})\b`)
)

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

// ParseText extracts an employee snapshot from raw prose. It returns nil
// only when neither a count nor a date could be extracted.
func ParseText(raw string) *companies.EmployeeSnapshot {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	dateRegion := raw
	countRegion := raw
	if m := parentheticRe.FindStringSubmatch(raw); m != nil {
		// A parenthetical suffix usually carries the as-of date; scan it
		// first and keep its digits out of the count scan.
		dateRegion = m[1]
		countRegion = strings.TrimSuffix(raw, m[0])
	}

	asOf, matched := extractDate(dateRegion)
	if matched != "" && dateRegion == countRegion {
		// Drop the matched date text so a bare year is not misread as a
		// headcount ("founded 1998").
		countRegion = strings.Replace(countRegion, matched, " ", 1)
	}

	count := extractCount(countRegion)

	if count == nil && asOf == nil {
		return nil
	}
	return &companies.EmployeeSnapshot{Count: count, AsOf: asOf}
}

// extractCount strips thousands separators and whitespace, then takes the
// first run of minCountDigits or more digits.
func extractCount(s string) *int {
	cleaned := strings.NewReplacer(",", "", " ", "", " ", "", "\t", "").Replace(s)
	run := countRe.FindString(cleaned)
	if run == "" {
		return nil
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return nil
	}
	return &n
}

// extractDate tries the supported date forms in priority order and returns
// the normalized UTC calendar date plus the matched substring. Candidates
// that do not represent a valid calendar date are treated as absent.
func extractDate(s string) (*utc.Time, string) {
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		if t := makeDate(m[1], m[2], m[3]); t != nil {
			return t, m[0]
		}
	}
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		if t := makeMonthDate(m[2], m[1], m[3]); t != nil {
			return t, m[0]
		}
	}
	if m := monthDayYearRe.FindStringSubmatch(s); m != nil {
		if t := makeMonthDate(m[1], m[2], m[3]); t != nil {
			return t, m[0]
		}
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		if t := makeMonthDate(m[1], "1", m[2]); t != nil {
			return t, m[0]
		}
	}
	if m := bareYearRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		t := utc.New(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		return &t, m[0]
	}
	return nil, ""
}

func makeDate(year, month, day string) *utc.Time {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 {
		return nil
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (June 31 -> July 1); reject those.
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return nil
	}
	u := utc.New(t)
	return &u
}

func makeMonthDate(monthName, day, year string) *utc.Time {
	mo, ok := months[strings.ToLower(monthName)]
	if !ok {
		return nil
	}
	y, _ := strconv.Atoi(year)
	d, _ := strconv.Atoi(day)
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != mo || t.Day() != d {
		return nil
	}
	u := utc.New(t)
	return &u
}
