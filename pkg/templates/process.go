package templates

import (
	"fmt"
	"strings"
)

// Processed is the outcome of placeholder substitution for one template.
type Processed struct {
	Query          string
	Params         map[string]string
	RequiredTables []string
}

// Period selector expressions resolved by the {period_selector}
// placeholder.
const (
	monthSelector   = "FORMAT(s.SaleDate, 'yyyy-MM')"
	quarterSelector = "CONCAT(YEAR(s.SaleDate), '-Q', DATEPART(QUARTER, s.SaleDate))"
)

// Process substitutes parameters into the named template. Caller params
// override the template defaults; substitution is a literal global string
// replace per key. The special "conditions" param fills {where_clause};
// when absent or empty the clause is blanked out entirely.
func Process(name string, params map[string]string) (Processed, error) {
	t, ok := Get(name)
	if !ok {
		return Processed{}, fmt.Errorf("unknown template %q", name)
	}

	merged := make(map[string]string, len(t.Defaults)+len(params))
	for k, v := range t.Defaults {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}

	query := t.SQL
	for k, v := range merged {
		if isSpecialParam(k) {
			continue
		}
		query = strings.ReplaceAll(query, "{"+k+"}", v)
	}

	query = resolvePeriodSelector(query, merged["period"])
	query = resolveWhereClause(query, merged["conditions"])

	return Processed{
		Query:          query,
		Params:         merged,
		RequiredTables: t.RequiredTables,
	}, nil
}

// isSpecialParam guards params with dedicated resolution logic against the
// literal substitution pass.
func isSpecialParam(k string) bool {
	return k == "period" || k == "conditions"
}

// resolvePeriodSelector picks the month or quarter grouping expression.
func resolvePeriodSelector(query, period string) string {
	selector := monthSelector
	if strings.EqualFold(period, "quarter") {
		selector = quarterSelector
	}
	return strings.ReplaceAll(query, "{period_selector}", selector)
}

// resolveWhereClause substitutes the assembled WHERE clause, or blanks the
// placeholder when no conditions were supplied.
func resolveWhereClause(query, conditions string) string {
	where := ""
	if strings.TrimSpace(conditions) != "" {
		where = "WHERE " + conditions
	}
	query = strings.ReplaceAll(query, "{where_clause}", where)
	query = strings.ReplaceAll(query, "{additional_where}", "")
	return query
}

// StripPlaceholders removes any leftover unresolved {placeholder} tokens.
func StripPlaceholders(query string) string {
	return placeholderPattern.ReplaceAllString(query, "")
}
