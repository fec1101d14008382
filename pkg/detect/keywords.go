package detect

import (
	"strings"

	"github.com/gallerydesk/nlsql/pkg/schema"
)

// Match records where one detected keyword came from, for explainability.
type Match struct {
	Term      string // the token or phrase as seen in the input
	Canonical string // the canonical keyword it resolved to
	Source    string // "synonym" or "schema"
}

// Detection is the output of keyword matching over one token stream.
type Detection struct {
	Keywords []string
	Matched  []Match
	Patterns Patterns
	Words    []string
}

// synonymRule maps a canonical keyword to the words that imply it.
type synonymRule struct {
	canonical string
	words     []string
}

// synonymRules are evaluated in order per token; the first rule containing
// the token wins and stops further synonym checks for that token. The
// schema keyword map is checked independently, so both can fire.
var synonymRules = []synonymRule{
	{"customer", []string{"customer", "customers", "client", "clients", "buyer", "buyers"}},
	{"salesperson", []string{"salesperson", "salespeople", "salespersons", "staff", "rep", "reps", "seller", "sellers", "employee", "employees"}},
	{"gallery", []string{"gallery", "galleries", "venue", "venues", "store", "stores"}},
	{"sales", []string{"sales", "sale", "sold", "selling", "revenue"}},
	{"order", []string{"order", "orders", "purchase", "purchases", "transaction", "transactions"}},
	{"item", []string{"item", "items", "artwork", "artworks", "piece", "pieces"}},
	{"spending", []string{"spending", "spent", "spend", "spenders"}},
	{"top", []string{"top", "best", "highest", "leading", "biggest"}},
	{"bottom", []string{"bottom", "worst", "lowest"}},
	{"list", []string{"list", "show", "display", "all", "every"}},
	{"count", []string{"count", "many", "number"}},
	{"total", []string{"total", "sum", "overall"}},
	{"average", []string{"average", "avg", "mean"}},
	{"recent", []string{"recent", "recently", "latest", "newest"}},
	{"details", []string{"details", "detail", "breakdown", "lines"}},
	{"compare", []string{"compare", "versus", "vs"}},
	{"over", []string{"over", "above", "exceeding"}},
	{"under", []string{"under", "below"}},
	{"monthly", []string{"monthly", "month"}},
	{"quarterly", []string{"quarterly", "quarter"}},
}

// knownCities are gallery locations recognized as location filters.
var knownCities = []string{"london", "manchester", "birmingham", "edinburgh", "bristol", "leeds", "glasgow"}

// DetectKeywords matches every token against the synonym rules and,
// independently, against the schema keyword map. Contiguous 2- and 3-word
// phrases are checked against the schema map only; this is how multi-word
// schema terms are recognized.
func DetectKeywords(tokens Tokens, s *schema.Schema) Detection {
	d := Detection{Patterns: tokens.Patterns, Words: tokens.Words}
	seen := make(map[string]bool)

	for _, word := range tokens.Words {
		if canonical, ok := lookupSynonym(word); ok {
			d.record(seen, word, canonical, "synonym")
		}
		if s != nil && s.HasKeyword(word) {
			d.record(seen, word, word, "schema")
		}
	}

	if s != nil {
		for _, phrase := range phrases(tokens.Words) {
			if s.HasKeyword(phrase) {
				d.record(seen, phrase, phrase, "schema")
			}
		}
	}

	return d
}

// record appends a keyword and its trace, deduplicating on the canonical
// form while keeping every distinct matched term in the trace.
func (d *Detection) record(seen map[string]bool, term, canonical, source string) {
	d.Matched = append(d.Matched, Match{Term: term, Canonical: canonical, Source: source})
	if !seen[canonical] {
		seen[canonical] = true
		d.Keywords = append(d.Keywords, canonical)
	}
}

// lookupSynonym finds the first rule whose word list contains the token.
func lookupSynonym(word string) (string, bool) {
	for _, rule := range synonymRules {
		for _, w := range rule.words {
			if w == word {
				return rule.canonical, true
			}
		}
	}
	return "", false
}

// phrases generates every contiguous 2-word and 3-word phrase.
func phrases(words []string) []string {
	var out []string
	for i := 0; i+1 < len(words); i++ {
		out = append(out, words[i]+" "+words[i+1])
		if i+2 < len(words) {
			out = append(out, words[i]+" "+words[i+1]+" "+words[i+2])
		}
	}
	return out
}

// Has reports whether the detection includes the canonical keyword.
func (d Detection) Has(keyword string) bool {
	for _, k := range d.Keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the canonical keywords were detected.
func (d Detection) HasAny(keywords ...string) bool {
	for _, k := range keywords {
		if d.Has(k) {
			return true
		}
	}
	return false
}

// cityIn returns the first known city mentioned in the keyword terms.
func cityIn(words []string) (string, bool) {
	for _, w := range words {
		for _, city := range knownCities {
			if w == city {
				return city, true
			}
		}
	}
	return "", false
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
