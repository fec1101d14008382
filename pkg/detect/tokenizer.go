// Package detect tokenizes free-text questions, matches them against the
// synonym tables and schema-derived keywords, and infers a structured
// intent for query generation.
package detect

import (
	"regexp"
	"strconv"
	"strings"
)

// Tokens is the normalized form of one input string.
type Tokens struct {
	Words      []string
	Patterns   Patterns
	Original   string
	Normalized string
}

// Patterns is the bag of structural matches extracted alongside the words.
type Patterns struct {
	Currencies    []float64
	Numbers       []int
	Years         []int
	MonthYears    []MonthYear
	RelativeSpans []Span
	Limit         *Limit
	Comparisons   []Comparison
}

// MonthYear is an explicit "March 2024" style reference.
type MonthYear struct {
	Month string
	Year  int
}

// Span is a relative time span such as "last 6 months".
type Span struct {
	N    int
	Unit string // day, week, month, year
}

// Limit is a top-N / bottom-N directive. When the input contains several,
// the last one wins.
type Limit struct {
	N      int
	Bottom bool
}

// Comparison pairs an operator word with a numeric value.
type Comparison struct {
	Operator string // ">", "<", ">=", "<=", "="
	Value    float64
}

var (
	currencyPattern  = regexp.MustCompile(`[£$€]\s?(\d+(?:,\d{3})*(?:\.\d+)?)`)
	numberPattern    = regexp.MustCompile(`\b(\d+)\b`)
	yearTokenPattern = regexp.MustCompile(`\b(20\d{2})\b`)
	monthYearTokens  = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(20\d{2})\b`)
	spanPattern      = regexp.MustCompile(`\b(?:last|past|over|in)\s+(\d+)\s+(day|week|month|year)s?\b`)
	limitPattern     = regexp.MustCompile(`\b(top|bottom|first|best|worst)\s+(\d+)\b`)
	comparePattern   = regexp.MustCompile(`\b(over|above|more than|at least|under|below|less than|at most|exactly)\s+[£$€]?\s?(\d+(?:,\d{3})*(?:\.\d+)?)`)

	// punctCleaner strips everything outside the tokenization whitelist:
	// letters, digits, whitespace, currency symbols, %, @, ., -.
	punctCleaner = regexp.MustCompile(`[^a-z0-9\s£$€%@.\-]`)
)

// comparisonOps maps operator words to SQL operators. Ordered so that
// multi-word forms are matched by the regex before their substrings.
var comparisonOps = map[string]string{
	"over":      ">",
	"above":     ">",
	"more than": ">",
	"at least":  ">=",
	"under":     "<",
	"below":     "<",
	"less than": "<",
	"at most":   "<=",
	"exactly":   "=",
}

// Tokenize lowercases the input, strips punctuation outside the whitelist,
// and splits on whitespace. Pattern extraction runs on the normalized but
// unsplit string. Each call compiles no state; matching is re-entrant.
func Tokenize(text string) Tokens {
	normalized := punctCleaner.ReplaceAllString(strings.ToLower(text), " ")

	words := strings.Fields(normalized)
	for i, w := range words {
		words[i] = strings.Trim(w, ".-")
	}
	words = compactNonEmpty(words)

	return Tokens{
		Words:      words,
		Patterns:   extractPatterns(normalized),
		Original:   text,
		Normalized: normalized,
	}
}

func compactNonEmpty(in []string) []string {
	out := in[:0]
	for _, w := range in {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// extractPatterns runs every structural extractor over the normalized
// string independently.
func extractPatterns(text string) Patterns {
	var p Patterns

	for _, m := range currencyPattern.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			p.Currencies = append(p.Currencies, v)
		}
	}

	for _, m := range numberPattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.Numbers = append(p.Numbers, n)
		}
	}

	for _, m := range yearTokenPattern.FindAllStringSubmatch(text, -1) {
		y, _ := strconv.Atoi(m[1])
		p.Years = append(p.Years, y)
	}

	for _, m := range monthYearTokens.FindAllStringSubmatch(text, -1) {
		y, _ := strconv.Atoi(m[2])
		p.MonthYears = append(p.MonthYears, MonthYear{Month: m[1], Year: y})
	}

	for _, m := range spanPattern.FindAllStringSubmatch(text, -1) {
		n, _ := strconv.Atoi(m[1])
		p.RelativeSpans = append(p.RelativeSpans, Span{N: n, Unit: m[2]})
	}

	// Last directive wins when several are present.
	for _, m := range limitPattern.FindAllStringSubmatch(text, -1) {
		n, _ := strconv.Atoi(m[2])
		p.Limit = &Limit{N: n, Bottom: m[1] == "bottom" || m[1] == "worst"}
	}

	for _, m := range comparePattern.FindAllStringSubmatch(text, -1) {
		op, ok := comparisonOps[m[1]]
		if !ok {
			continue
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64); err == nil {
			p.Comparisons = append(p.Comparisons, Comparison{Operator: op, Value: v})
		}
	}

	return p
}
