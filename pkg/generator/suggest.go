package generator

import (
	"fmt"
	"strings"

	"github.com/gallerydesk/nlsql/pkg/dates"
	"github.com/gallerydesk/nlsql/pkg/templates"
)

// Input length bounds enforced by ValidateInput.
const (
	minInputLength = 3
	maxInputLength = 500
)

// suggestionRule maps an input keyword to example questions.
type suggestionRule struct {
	keyword  string
	examples []string
}

// suggestionRules are scanned against the lowercased raw input.
var suggestionRules = []suggestionRule{
	{"customer", []string{
		"top 5 customers by spending this year",
		"list all customers in London",
	}},
	{"salesperson", []string{
		"sales by salesperson this quarter",
		"list all salespeople",
	}},
	{"staff", []string{
		"sales by salesperson this quarter",
	}},
	{"gallery", []string{
		"sales by gallery this year",
		"total sales at the Riverside Gallery",
	}},
	{"sales", []string{
		"monthly sales this year",
		"sales over £1000 in the last 3 months",
	}},
	{"order", []string{
		"order details for the last 30 days",
	}},
}

// genericSuggestions are appended when nothing more specific matched.
var genericSuggestions = []string{
	"top 10 customers by spending",
	"sales by gallery this year",
	"monthly sales for 2024",
}

// SetCustomSuggestions registers operator-supplied example questions that
// are offered alongside the built-in ones.
func (g *Generator) SetCustomSuggestions(examples []string) {
	g.custom = append([]string{}, examples...)
}

// GetSuggestions returns example questions related to the input. The raw
// text is matched against the fixed keyword table; custom and generic
// examples pad the list so it is never empty.
func (g *Generator) GetSuggestions(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, rule := range suggestionRules {
		if strings.Contains(lower, rule.keyword) {
			for _, ex := range rule.examples {
				add(ex)
			}
		}
	}
	for _, ex := range g.custom {
		add(ex)
	}
	for _, ex := range genericSuggestions {
		add(ex)
	}
	return out
}

// ValidateInput returns human-readable issues with the input text; an
// empty slice means valid. Issues are advisory and never block
// generation.
func (g *Generator) ValidateInput(text string) []string {
	trimmed := strings.TrimSpace(text)

	var issues []string
	switch {
	case trimmed == "":
		issues = append(issues, "please enter a question")
	case len(trimmed) < minInputLength:
		issues = append(issues, fmt.Sprintf("question is too short (minimum %d characters)", minInputLength))
	case len(trimmed) > maxInputLength:
		issues = append(issues, fmt.Sprintf("question is too long (maximum %d characters)", maxInputLength))
	}

	issues = append(issues, dates.Validate(text)...)
	return issues
}

// TemplateInfo is one entry of the public template listing.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetAvailableTemplates lists the template catalog.
func (g *Generator) GetAvailableTemplates() []TemplateInfo {
	all := templates.All()
	out := make([]TemplateInfo, 0, len(all))
	for _, t := range all {
		out = append(out, TemplateInfo{Name: t.Name, Description: t.Description})
	}
	return out
}

// SchemaInfo summarizes the loaded schema.
type SchemaInfo struct {
	Tables        []string `json:"tables"`
	Relationships []string `json:"relationships"`
	KeywordCount  int      `json:"keyword_count"`
}

// GetSchemaInfo returns the loaded schema summary, or nil before
// initialization.
func (g *Generator) GetSchemaInfo() *SchemaInfo {
	if g.schema == nil {
		return nil
	}

	rels := g.schema.Relationships()
	relStrings := make([]string, 0, len(rels))
	for _, r := range rels {
		relStrings = append(relStrings, fmt.Sprintf("%s.%s -> %s.%s (%s)",
			r.FromTable, r.FromKey, r.ToTable, r.ToKey, r.Cardinality))
	}

	return &SchemaInfo{
		Tables:        g.schema.Tables(),
		Relationships: relStrings,
		KeywordCount:  g.schema.KeywordCount(),
	}
}

// notInitialized is the fixed failure for generation before schema load.
func (g *Generator) notInitialized() *Result {
	return &Result{
		Success:     false,
		Error:       "generator is not initialized: no schema loaded",
		Suggestions: []string{"load a schema before generating queries"},
	}
}

// failure converts an internal error into a structured failure result.
func (g *Generator) failure(msg, input string) *Result {
	return &Result{
		Success:     false,
		Error:       msg,
		Suggestions: g.GetSuggestions(input),
	}
}
