// Package dates extracts temporal phrases from free text and renders them
// as SQL Server filter fragments against the sale date column.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateColumn is the fixed column reference every condition targets.
const dateColumn = "s.SaleDate"

// Result carries the extracted filter conditions and their human-readable
// labels. Conditions accumulate; a string mentioning both a year and a
// quarter produces two conditions for the caller to combine.
type Result struct {
	Conditions []string
	Labels     []string
}

// Extractors run independently and in a fixed order.
var (
	yearPattern      = regexp.MustCompile(`\b(20\d{2})\b`)
	monthYearPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(20\d{2})\b`)
	rangePattern     = regexp.MustCompile(`(?i)\bbetween\s+(\d{4}-\d{2}-\d{2})\s+and\s+(\d{4}-\d{2}-\d{2})\b`)
	relativePattern  = regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d+)\s+(day|week|month|year)s?\b`)
	periodPattern    = regexp.MustCompile(`(?i)\b(this|last)\s+(week|month|year)\b`)
	quarterPattern   = regexp.MustCompile(`(?i)\bq([1-4])\b`)
	quarterWords     = regexp.MustCompile(`(?i)\b(first|second|third|fourth)\s+quarter\b`)
	finYearPattern   = regexp.MustCompile(`(?i)\b(?:financial|fiscal)\s+year\s*(20\d{2})?`)
	dayPattern       = regexp.MustCompile(`(?i)\b(today|yesterday)\b`)
	ytdPattern       = regexp.MustCompile(`(?i)\byear\s+to\s+date\b|\bytd\b`)
	recencyPattern   = regexp.MustCompile(`(?i)\b(recent|recently|latest|newest)\b`)
	currentPattern   = regexp.MustCompile(`(?i)\bcurrent\s+(year|month)\b`)

	// anyYearPattern is wider than yearPattern so validation can flag
	// pre-2000 years that extraction never matches.
	anyYearPattern = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

var quarterNumbers = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4,
}

// Parse applies every extractor to the text and accumulates conditions.
// Matches of different kinds are non-exclusive.
func Parse(text string) Result {
	var r Result

	r.monthYears(text)
	r.ranges(text)
	r.financialYears(text)
	r.bareYears(text)
	r.relativeSpans(text)
	r.periods(text)
	r.quarters(text)
	r.days(text)
	r.yearToDate(text)
	r.contextual(text)

	return r
}

func (r *Result) add(condition, label string) {
	r.Conditions = append(r.Conditions, condition)
	r.Labels = append(r.Labels, label)
}

// hasLabel reports whether any existing label contains the substring.
// Later heuristics use it to avoid duplicating earlier extractions.
func (r *Result) hasLabel(substr string) bool {
	for _, l := range r.Labels {
		if strings.Contains(strings.ToLower(l), substr) {
			return true
		}
	}
	return false
}

// monthYears handles "March 2024" style phrases. It runs before bareYears
// so the year match can be suppressed for already-consumed pairs.
func (r *Result) monthYears(text string) {
	for _, m := range monthYearPattern.FindAllStringSubmatch(text, -1) {
		month := monthNumbers[strings.ToLower(m[1])]
		year := m[2]
		r.add(
			fmt.Sprintf("MONTH(%s) = %d AND YEAR(%s) = %s", dateColumn, month, dateColumn, year),
			fmt.Sprintf("in %s %s", titleCase(m[1]), year),
		)
	}
}

// bareYears handles explicit 4-digit years not already captured by a
// month-year pair, a date range, or a fiscal-year phrase.
func (r *Result) bareYears(text string) {
	for _, m := range yearPattern.FindAllStringSubmatch(text, -1) {
		year := m[1]
		if r.hasLabel(year) {
			continue
		}
		r.add(
			fmt.Sprintf("YEAR(%s) = %s", dateColumn, year),
			"in "+year,
		)
	}
}

func (r *Result) ranges(text string) {
	for _, m := range rangePattern.FindAllStringSubmatch(text, -1) {
		r.add(
			fmt.Sprintf("%s BETWEEN '%s' AND '%s'", dateColumn, m[1], m[2]),
			fmt.Sprintf("between %s and %s", m[1], m[2]),
		)
	}
}

func (r *Result) relativeSpans(text string) {
	for _, m := range relativePattern.FindAllStringSubmatch(text, -1) {
		n, _ := strconv.Atoi(m[1])
		unit := strings.ToUpper(m[2])
		label := strings.ToLower(m[2])
		if n != 1 {
			label += "s"
		}
		r.add(
			fmt.Sprintf("%s >= DATEADD(%s, -%d, GETDATE())", dateColumn, unit, n),
			fmt.Sprintf("in the last %d %s", n, label),
		)
	}
}

func (r *Result) periods(text string) {
	for _, m := range periodPattern.FindAllStringSubmatch(text, -1) {
		which := strings.ToLower(m[1])
		period := strings.ToLower(m[2])
		cond, ok := periodCondition(which, period)
		if !ok {
			continue
		}
		r.add(cond, which+" "+period)
	}
}

// periodCondition renders "this/last week|month|year" conditions.
func periodCondition(which, period string) (string, bool) {
	anchor := "GETDATE()"
	if which == "last" {
		anchor = fmt.Sprintf("DATEADD(%s, -1, GETDATE())", strings.ToUpper(period))
	}
	switch period {
	case "year":
		return fmt.Sprintf("YEAR(%s) = YEAR(%s)", dateColumn, anchor), true
	case "month":
		return fmt.Sprintf("MONTH(%s) = MONTH(%s) AND YEAR(%s) = YEAR(%s)",
			dateColumn, anchor, dateColumn, anchor), true
	case "week":
		return fmt.Sprintf("DATEPART(WEEK, %s) = DATEPART(WEEK, %s) AND YEAR(%s) = YEAR(%s)",
			dateColumn, anchor, dateColumn, anchor), true
	}
	return "", false
}

func (r *Result) quarters(text string) {
	if m := quarterPattern.FindStringSubmatch(text); m != nil {
		q, _ := strconv.Atoi(m[1])
		r.addQuarter(q)
		return
	}
	if m := quarterWords.FindStringSubmatch(text); m != nil {
		r.addQuarter(quarterNumbers[strings.ToLower(m[1])])
	}
}

func (r *Result) addQuarter(q int) {
	r.add(
		fmt.Sprintf("DATEPART(QUARTER, %s) = %d", dateColumn, q),
		fmt.Sprintf("in Q%d", q),
	)
}

// financialYears assumes the UK April-to-March fiscal year. "financial year
// 2024" means April 2024 through March 2025; without an explicit year the
// current fiscal year is used.
func (r *Result) financialYears(text string) {
	m := finYearPattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	if m[1] != "" {
		start, _ := strconv.Atoi(m[1])
		r.add(
			fmt.Sprintf("%s >= '%d-04-01' AND %s < '%d-04-01'", dateColumn, start, dateColumn, start+1),
			fmt.Sprintf("financial year %d/%d", start, start+1),
		)
		return
	}
	r.add(
		fmt.Sprintf("%s >= DATEFROMPARTS(YEAR(DATEADD(MONTH, -3, GETDATE())), 4, 1) AND %s < DATEFROMPARTS(YEAR(DATEADD(MONTH, -3, GETDATE())) + 1, 4, 1)",
			dateColumn, dateColumn),
		"this financial year",
	)
}

func (r *Result) days(text string) {
	for _, m := range dayPattern.FindAllStringSubmatch(text, -1) {
		switch strings.ToLower(m[1]) {
		case "today":
			r.add(
				fmt.Sprintf("CAST(%s AS DATE) = CAST(GETDATE() AS DATE)", dateColumn),
				"today",
			)
		case "yesterday":
			r.add(
				fmt.Sprintf("CAST(%s AS DATE) = CAST(DATEADD(DAY, -1, GETDATE()) AS DATE)", dateColumn),
				"yesterday",
			)
		}
	}
}

func (r *Result) yearToDate(text string) {
	if !ytdPattern.MatchString(text) {
		return
	}
	r.add(
		fmt.Sprintf("%s >= DATEFROMPARTS(YEAR(GETDATE()), 1, 1) AND %s <= GETDATE()", dateColumn, dateColumn),
		"year to date",
	)
}

// contextual injects fallbacks when no explicit date expression matched.
// "recent"-style words default to the last 3 months; "current year/month"
// upgrades only when not already captured by an earlier rule.
func (r *Result) contextual(text string) {
	if len(r.Conditions) == 0 && recencyPattern.MatchString(text) {
		r.add(
			fmt.Sprintf("%s >= DATEADD(MONTH, -3, GETDATE())", dateColumn),
			"in the last 3 months",
		)
	}

	for _, m := range currentPattern.FindAllStringSubmatch(text, -1) {
		period := strings.ToLower(m[1])
		if r.hasLabel("this " + period) {
			continue
		}
		cond, ok := periodCondition("this", period)
		if !ok {
			continue
		}
		r.add(cond, "this "+period)
	}
}

// Validate flags implausible or contradictory date references as advisory
// issue strings. It never blocks generation.
func Validate(text string) []string {
	var issues []string
	currentYear := time.Now().Year()

	for _, m := range anyYearPattern.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[1])
		switch {
		case year > currentYear+1:
			issues = append(issues, fmt.Sprintf("year %d is more than one year in the future", year))
		case year < 2000:
			issues = append(issues, fmt.Sprintf("year %d is before 2000 and unlikely to have data", year))
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "this year") && strings.Contains(lower, "last year") {
		issues = append(issues, "both \"this year\" and \"last year\" mentioned; results may be ambiguous")
	}

	return issues
}

// DateColumn returns the fixed date column reference.
func DateColumn() string {
	return dateColumn
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
