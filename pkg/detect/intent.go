package detect

import (
	"fmt"
	"regexp"
	"strings"
)

// Query types assigned by the classification cascade.
const (
	QueryTopCustomers     = "top_customers"
	QuerySalespersonList  = "salesperson_list"
	QueryGallerySales     = "gallery_sales"
	QuerySalespersonSales = "salesperson_sales"
	QuerySalesByPeriod    = "sales_by_period"
	QueryOrderDetails     = "order_details"
	QueryCustomerList     = "customer_list"
	QueryUnknown          = "unknown"
)

// Filter types.
const (
	FilterAmount      = "amount"
	FilterDate        = "date"
	FilterGallery     = "gallery"
	FilterSalesperson = "salesperson"
)

// Filter is one structured constraint extracted from the input.
type Filter struct {
	Type     string
	Operator string
	Value    string
	Label    string
}

// Intent is the structured interpretation of one question. Confidence is a
// fixed constant assigned by the first matching cascade branch, not a
// probability; it only chooses between the template and builder paths.
type Intent struct {
	QueryType  string
	Entities   []string
	Actions    []string
	Filters    []Filter
	Confidence float64
}

// entityKeywords and actionKeywords are the fixed category lists.
var entityKeywords = []string{"customer", "salesperson", "gallery", "order", "item", "sales"}
var actionKeywords = []string{"top", "bottom", "list", "count", "total", "average", "compare", "recent"}

// Name extraction runs over the original, non-lowercased text.
var (
	galleryNamePattern = regexp.MustCompile(`([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*)\s+(?:Gallery|Galleries|Centre|Center|Store)\b`)

	roleNamePattern    = regexp.MustCompile(`(?:(?i:salesperson|sales rep|staff member|seller|agent))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	quotedNamePattern  = regexp.MustCompile(`['"]([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)['"]`)
	leadingNamePattern = regexp.MustCompile(`^([A-Z][a-z]+\s+[A-Z][a-z]+)\s+(?:(?i:sold|made|achieved|generated|closed|handled))`)

	galleryWords = []string{"gallery", "galleries", "centre", "center", "store"}
)

// AnalyzeIntent infers entities, actions, the query type, and filters from
// one detection result. The query-type cascade is order-dependent: only the
// first matching branch applies.
func AnalyzeIntent(d Detection, originalText string) Intent {
	intent := Intent{
		Entities: intersect(d.Keywords, entityKeywords),
		Actions:  intersect(d.Keywords, actionKeywords),
	}

	intent.QueryType, intent.Confidence = classify(d)
	intent.Filters = extractFilters(d, originalText)

	return intent
}

// classify runs the fixed precedence cascade. The order is deliberate:
// top-customer spending questions are the most specific, bare customer
// listings the least.
func classify(d Detection) (string, float64) {
	hasLimit := d.Patterns.Limit != nil

	switch {
	case (d.Has("top") || d.Has("bottom") || hasLimit) && d.Has("customer"):
		return QueryTopCustomers, 0.9
	case d.Has("salesperson") && d.Has("list") && !d.Has("sales"):
		return QuerySalespersonList, 0.8
	case d.Has("gallery") && d.HasAny("sales", "total", "revenue"):
		return QueryGallerySales, 0.85
	case d.Has("salesperson") && d.HasAny("sales", "total", "spending"):
		return QuerySalespersonSales, 0.85
	case d.HasAny("monthly", "quarterly") && d.Has("sales"):
		return QuerySalesByPeriod, 0.8
	case d.Has("order") && d.HasAny("details", "item"):
		return QueryOrderDetails, 0.75
	case d.Has("customer"):
		return QueryCustomerList, 0.7
	}
	return QueryUnknown, 0.3
}

// extractFilters appends one filter per matched pattern: amounts, dates,
// known cities, and capitalized gallery/person names from the original
// text.
func extractFilters(d Detection, originalText string) []Filter {
	var filters []Filter

	filters = append(filters, amountFilters(d)...)
	filters = append(filters, dateFilters(d)...)

	if city, ok := cityIn(d.Words); ok {
		filters = append(filters, Filter{
			Type:     FilterGallery,
			Operator: "city",
			Value:    titleCase(city),
			Label:    "in " + titleCase(city),
		})
	}

	if name, ok := galleryName(originalText); ok {
		filters = append(filters, Filter{
			Type:     FilterGallery,
			Operator: "name",
			Value:    name,
			Label:    "at " + name,
		})
	}

	for _, name := range personNames(originalText) {
		filters = append(filters, Filter{
			Type:  FilterSalesperson,
			Value: name,
			Label: "for " + name,
		})
	}

	return filters
}

// amountFilters turns currency amounts and comparison phrases into amount
// filters. Comparisons carry their own operator; bare currency amounts
// default to ">".
func amountFilters(d Detection) []Filter {
	var filters []Filter

	if len(d.Patterns.Comparisons) > 0 {
		for _, c := range d.Patterns.Comparisons {
			filters = append(filters, Filter{
				Type:     FilterAmount,
				Operator: c.Operator,
				Value:    trimFloat(c.Value),
				Label:    fmt.Sprintf("amount %s %s", c.Operator, trimFloat(c.Value)),
			})
		}
		return filters
	}

	op := ">"
	if d.Has("under") {
		op = "<"
	}
	for _, v := range d.Patterns.Currencies {
		filters = append(filters, Filter{
			Type:     FilterAmount,
			Operator: op,
			Value:    trimFloat(v),
			Label:    fmt.Sprintf("amount %s %s", op, trimFloat(v)),
		})
	}
	return filters
}

// dateFilters mirrors the date patterns into filters for metadata and
// explanation; the SQL conditions themselves come from the dates package.
func dateFilters(d Detection) []Filter {
	var filters []Filter
	for _, span := range d.Patterns.RelativeSpans {
		unit := span.Unit
		if span.N != 1 {
			unit += "s"
		}
		filters = append(filters, Filter{
			Type:  FilterDate,
			Value: fmt.Sprintf("last %d %s", span.N, unit),
			Label: fmt.Sprintf("in the last %d %s", span.N, unit),
		})
	}
	for _, y := range d.Patterns.Years {
		filters = append(filters, Filter{
			Type:     FilterDate,
			Operator: "year",
			Value:    fmt.Sprintf("%d", y),
			Label:    fmt.Sprintf("in %d", y),
		})
	}
	return filters
}

// galleryName extracts the first capitalized name followed by a gallery
// word from the original text.
func galleryName(text string) (string, bool) {
	m := galleryNamePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// personNames runs the three name-detection strategies over the original
// text. Each strategy contributes only its first match to avoid duplicate
// or conflicting name filters; names seen by more than one strategy are
// deduplicated.
func personNames(text string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, pattern := range []*regexp.Regexp{roleNamePattern, quotedNamePattern, leadingNamePattern} {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := m[1]
		if looksLikeVenue(text, name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// looksLikeVenue rejects a candidate person name that is actually the
// leading part of a venue reference ("Riverside Gallery").
func looksLikeVenue(text, name string) bool {
	lower := strings.ToLower(name)
	for _, w := range galleryWords {
		if strings.Contains(lower, w) {
			return true
		}
		if containsFold(text, name+" "+w) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// intersect keeps category members in category order.
func intersect(keywords, category []string) []string {
	var out []string
	for _, c := range category {
		for _, k := range keywords {
			if k == c {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
