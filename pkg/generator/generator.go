// Package generator wires the schema, detector, date parser, templates,
// and builder into the single text-to-SQL entry point.
package generator

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gallerydesk/nlsql/pkg/builder"
	"github.com/gallerydesk/nlsql/pkg/dates"
	"github.com/gallerydesk/nlsql/pkg/detect"
	"github.com/gallerydesk/nlsql/pkg/schema"
	"github.com/gallerydesk/nlsql/pkg/templates"
)

// confidenceThreshold separates the template path from the builder
// fallback.
const confidenceThreshold = 0.6

// Result is the discriminated outcome of one generation. Callers always
// receive a Result; GenerateQuery never panics past its boundary.
type Result struct {
	Success     bool      `json:"success"`
	Query       string    `json:"query,omitempty"`
	Type        string    `json:"type,omitempty"` // "template" or "custom"
	Explanation string    `json:"explanation,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
	Error       string    `json:"error,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// Metadata exposes the pipeline's intermediate results for explainability.
type Metadata struct {
	Keywords   []string        `json:"keywords"`
	Matched    []detect.Match  `json:"matched,omitempty"`
	DateLabels []string        `json:"date_labels,omitempty"`
	Intent     *detect.Intent  `json:"intent,omitempty"`
	Template   string          `json:"template,omitempty"`
	Confidence float64         `json:"confidence"`
	Filters    []detect.Filter `json:"filters,omitempty"`
}

// InitStats summarizes an initialized schema.
type InitStats struct {
	Tables        int `json:"tables"`
	Keywords      int `json:"keywords"`
	Relationships int `json:"relationships"`
}

// Generator is the orchestrator. The schema context is built once by
// Initialize and read-only afterward; concurrent GenerateQuery calls are
// safe, with only the history ring behind a lock.
type Generator struct {
	log    *slog.Logger
	schema *schema.Schema
	custom []string

	mu      sync.Mutex
	history []HistoryEntry
}

// New creates a Generator. A nil logger falls back to slog.Default.
func New(log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{log: log}
}

// Initialize parses the schema description and builds the keyword context.
func (g *Generator) Initialize(schemaText string) (*InitStats, error) {
	if strings.TrimSpace(schemaText) == "" {
		return nil, fmt.Errorf("schema description is empty")
	}

	s := schema.Parse(schemaText)
	if len(s.Tables()) == 0 {
		return nil, fmt.Errorf("schema description contained no usable rows")
	}
	g.schema = s

	stats := &InitStats{
		Tables:        len(s.Tables()),
		Keywords:      s.KeywordCount(),
		Relationships: len(s.Relationships()),
	}
	g.log.Info("schema initialized",
		"tables", stats.Tables,
		"keywords", stats.Keywords,
		"relationships", stats.Relationships)
	return stats, nil
}

// Initialized reports whether a schema has been loaded.
func (g *Generator) Initialized() bool {
	return g.schema != nil
}

// GenerateQuery translates one natural-language question into SQL. Any
// panic or error inside the pipeline is converted into a failure Result
// with suggestions; the method never returns an error to the caller.
func (g *Generator) GenerateQuery(text string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("query generation panicked", "input", text, "panic", r)
			result = g.failure(fmt.Sprintf("internal error: %v", r), text)
		}
	}()

	if g.schema == nil {
		return g.notInitialized()
	}

	tokens := detect.Tokenize(text)
	detection := detect.DetectKeywords(tokens, g.schema)
	dateResult := dates.Parse(text)
	intent := detect.AnalyzeIntent(detection, text)

	templateName := templates.FindBest(detection.Keywords, intent.QueryType)

	conditions := g.buildConditions(dateResult, intent.Filters)

	var sql string
	var resultType string
	usedTemplate := ""
	if intent.Confidence > confidenceThreshold && templateName != "" {
		applicable := filterConditions(conditions, g.templateAliases(templateName))
		processed, err := templates.Process(templateName, g.templateParams(detection, applicable))
		if err != nil {
			return g.failure("Template processing failed: "+err.Error(), text)
		}
		sql = processed.Query
		resultType = "template"
		usedTemplate = templateName
	} else {
		sql = g.buildFallback(intent, detection, conditions)
		resultType = "custom"
	}

	sql = templates.StripPlaceholders(sql)
	sql = templates.Format(sql)

	meta := &Metadata{
		Keywords:   detection.Keywords,
		Matched:    detection.Matched,
		DateLabels: dateResult.Labels,
		Intent:     &intent,
		Template:   usedTemplate,
		Confidence: intent.Confidence,
		Filters:    intent.Filters,
	}

	res := &Result{
		Success:     true,
		Query:       sql,
		Type:        resultType,
		Explanation: g.explain(intent, usedTemplate, dateResult.Labels),
		Metadata:    meta,
	}
	g.remember(text, res)

	g.log.Debug("query generated",
		"type", resultType,
		"template", usedTemplate,
		"confidence", intent.Confidence)
	return res
}

// buildConditions merges date conditions with filter-derived conditions.
// Filters are deduplicated by type, keeping the longest (most specific)
// value per type.
func (g *Generator) buildConditions(dateResult dates.Result, filters []detect.Filter) []string {
	conditions := append([]string{}, dateResult.Conditions...)

	for _, f := range dedupeFilters(filters) {
		if cond := filterCondition(f); cond != "" {
			conditions = append(conditions, cond)
		}
	}
	return conditions
}

// dedupeFilters keeps one filter per type, preferring the longest value.
// Date filters are excluded entirely; their SQL comes from the date
// parser.
func dedupeFilters(filters []detect.Filter) []detect.Filter {
	best := make(map[string]detect.Filter)
	var order []string
	for _, f := range filters {
		if f.Type == detect.FilterDate {
			continue
		}
		prev, ok := best[f.Type]
		if !ok {
			best[f.Type] = f
			order = append(order, f.Type)
			continue
		}
		if len(f.Value) > len(prev.Value) {
			best[f.Type] = f
		}
	}

	out := make([]detect.Filter, 0, len(order))
	for _, t := range order {
		out = append(out, best[t])
	}
	return out
}

// filterCondition renders one filter as a SQL predicate.
func filterCondition(f detect.Filter) string {
	switch f.Type {
	case detect.FilterAmount:
		op := f.Operator
		if op == "" {
			op = ">"
		}
		return fmt.Sprintf("s.TotalAmount %s %s", op, f.Value)
	case detect.FilterGallery:
		if f.Operator == "city" {
			return fmt.Sprintf("g.City = '%s'", escape(f.Value))
		}
		return fmt.Sprintf("g.GalleryName LIKE '%%%s%%'", escape(f.Value))
	case detect.FilterSalesperson:
		first, last, ok := strings.Cut(f.Value, " ")
		if ok {
			return fmt.Sprintf("st.FirstName = '%s' AND st.LastName = '%s'", escape(first), escape(last))
		}
		return fmt.Sprintf("(st.FirstName = '%s' OR st.LastName = '%s')", escape(f.Value), escape(f.Value))
	}
	return ""
}

// templateParams assembles the parameter map for template processing.
func (g *Generator) templateParams(d detect.Detection, conditions []string) map[string]string {
	params := map[string]string{
		"conditions": strings.Join(conditions, " AND "),
	}
	if d.Patterns.Limit != nil {
		params["limit"] = strconv.Itoa(d.Patterns.Limit.N)
		if d.Patterns.Limit.Bottom {
			params["order_dir"] = "ASC"
		}
	}
	if d.Has("quarterly") {
		params["period"] = "quarter"
	}
	return params
}

// buildFallback assembles a query manually when no template is trusted.
func (g *Generator) buildFallback(intent detect.Intent, d detect.Detection, conditions []string) string {
	q := builder.New(g.schema)

	switch intent.QueryType {
	case detect.QueryTopCustomers:
		limit := 10
		if d.Patterns.Limit != nil {
			limit = d.Patterns.Limit.N
		}
		q.TopCustomers(limit)
	case detect.QuerySalespersonList:
		q.SalespersonList()
	case detect.QueryGallerySales:
		q.GallerySales()
	case detect.QuerySalespersonSales:
		q.SalespersonSales()
	case detect.QueryOrderDetails:
		q.OrderDetails()
	case detect.QueryCustomerList:
		q.CustomerList()
	default:
		q.Select("s.SaleID", "s.SaleDate", "s.TotalAmount").
			AutoJoin(g.requiredTables(d)).
			OrderBy("s.SaleDate DESC").
			Limit(50)
	}

	// A condition referencing a table the fallback query never joined
	// would not resolve; skip those rather than emit broken SQL.
	available := q.Aliases()
	for _, cond := range conditions {
		if conditionApplies(cond, available) {
			q.Where(cond)
		}
	}
	return q.Build()
}

var aliasRefPattern = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9]*)\.`)

// templateAliases returns the aliases available inside a template's FROM
// and JOIN clauses.
func (g *Generator) templateAliases(name string) map[string]bool {
	aliases := make(map[string]bool)
	t, ok := templates.Get(name)
	if !ok {
		return aliases
	}
	for _, table := range t.RequiredTables {
		if tbl, ok := g.schema.Table(table); ok {
			aliases[tbl.Alias] = true
		}
	}
	return aliases
}

// filterConditions drops conditions referencing unavailable aliases.
func filterConditions(conditions []string, available map[string]bool) []string {
	out := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		if conditionApplies(cond, available) {
			out = append(out, cond)
		}
	}
	return out
}

// conditionApplies reports whether every alias the condition references is
// present in the query.
func conditionApplies(cond string, available map[string]bool) bool {
	for _, m := range aliasRefPattern.FindAllStringSubmatch(cond, -1) {
		if !available[m[1]] {
			return false
		}
	}
	return true
}

// requiredTables maps detected schema keywords to their tables, always
// including the central table.
func (g *Generator) requiredTables(d detect.Detection) []string {
	seen := map[string]bool{schema.CentralTable(): true}
	tables := []string{schema.CentralTable()}
	for _, m := range d.Matched {
		if m.Source != "schema" {
			continue
		}
		for _, ref := range g.schema.Lookup(m.Term) {
			if !seen[ref.Table] {
				seen[ref.Table] = true
				tables = append(tables, ref.Table)
			}
		}
	}
	return tables
}

// explain builds the human-readable summary attached to each result.
func (g *Generator) explain(intent detect.Intent, templateName string, dateLabels []string) string {
	var parts []string

	if t, ok := templates.Get(templateName); ok {
		parts = append(parts, t.Title)
	} else if intent.QueryType != detect.QueryUnknown {
		parts = append(parts, strings.ReplaceAll(intent.QueryType, "_", " "))
	} else {
		parts = append(parts, "custom sales query")
	}

	parts = append(parts, dateLabels...)
	for _, f := range dedupeFilters(intent.Filters) {
		if f.Label != "" {
			parts = append(parts, f.Label)
		}
	}

	return strings.Join(parts, ", ")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
