// Package schema builds the table registry, keyword mappings, and join
// graph for the gallery sales database from a plain-text column listing.
package schema

import (
	"strconv"
	"strings"
)

// RefKind distinguishes table-level from column-level keyword candidates.
type RefKind string

const (
	RefTable  RefKind = "table"
	RefColumn RefKind = "column"
)

// Ref is one candidate mapping for a keyword. A single keyword may map to
// several tables or columns; callers resolve the ambiguity by scoring.
type Ref struct {
	Kind    RefKind
	Table   string
	Alias   string
	Column  string
	FullRef string // "alias.Column" for columns, the alias for tables
}

// Column describes one column and the keywords derived from it.
type Column struct {
	Name     string
	DataType string
	Keywords []string
}

// Table describes one table with its generated alias and ordered columns.
type Table struct {
	Name    string
	Alias   string
	Columns []Column
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Schema holds the parsed table registry, the keyword map, and the fixed
// relationship graph. It is built once and read-only afterward, so it is
// safe for concurrent readers.
type Schema struct {
	tables        map[string]*Table
	order         []string
	keywords      map[string][]Ref
	relationships []Relationship
}

// Parse ingests newline-delimited "Table,Column,Type" rows. Blank lines and
// rows missing a table or column name are skipped silently. Relationships
// are not derived from the input; only the fixed graph over the five known
// tables is available.
func Parse(input string) *Schema {
	s := &Schema{
		tables:        make(map[string]*Table),
		keywords:      make(map[string][]Ref),
		relationships: knownRelationships,
	}

	usedAliases := make(map[string]bool)
	for _, t := range knownAliases {
		usedAliases[t] = true
	}

	for _, line := range strings.Split(input, "\n") {
		tableName, columnName, dataType, ok := splitRow(line)
		if !ok {
			continue
		}
		tbl := s.table(tableName, usedAliases)
		col := Column{
			Name:     columnName,
			DataType: dataType,
			Keywords: columnKeywords(columnName, dataType),
		}
		tbl.Columns = append(tbl.Columns, col)
	}

	s.buildKeywordMap()
	return s
}

// splitRow parses one "Table,Column,Type" row. The type field is optional.
func splitRow(line string) (table, column, dataType string, ok bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return "", "", "", false
	}
	table = strings.TrimSpace(parts[0])
	column = strings.TrimSpace(parts[1])
	if len(parts) > 2 {
		dataType = strings.TrimSpace(parts[2])
	}
	if table == "" || column == "" {
		return "", "", "", false
	}
	return table, column, dataType, true
}

// table returns the registry entry for name, creating it on first sight.
func (s *Schema) table(name string, usedAliases map[string]bool) *Table {
	if t, ok := s.tables[name]; ok {
		return t
	}
	t := &Table{Name: name, Alias: assignAlias(name, usedAliases)}
	s.tables[name] = t
	s.order = append(s.order, name)
	return t
}

// assignAlias uses the fixed lookup for known tables and falls back to the
// lowercased first character otherwise. First-letter fallbacks can collide,
// so collisions get a numeric suffix (o, o2, o3, ...).
func assignAlias(table string, used map[string]bool) string {
	if alias, ok := knownAliases[table]; ok {
		return alias
	}
	base := strings.ToLower(table[:1])
	alias := base
	for n := 2; used[alias]; n++ {
		alias = base + strconv.Itoa(n)
	}
	used[alias] = true
	return alias
}

// columnKeywords derives the keyword set for a column: the lowercased name,
// every matching name-pattern rule, and the first matching type rule.
func columnKeywords(name, dataType string) []string {
	lower := strings.ToLower(name)
	keywords := []string{lower}

	for _, rule := range namePatternRules {
		if strings.Contains(lower, rule.substr) {
			keywords = append(keywords, rule.synonyms...)
		}
	}

	// Type matching short-circuits at the first hit.
	lowerType := strings.ToLower(dataType)
	for _, rule := range typePatternRules {
		if strings.Contains(lowerType, rule.substr) {
			keywords = append(keywords, rule.synonyms...)
			break
		}
	}

	return dedupe(keywords)
}

// buildKeywordMap unions table-level and column-level keywords into the
// global map, in table processing order.
func (s *Schema) buildKeywordMap() {
	for _, name := range s.order {
		tbl := s.tables[name]

		for _, kw := range tableSynonyms[name] {
			s.keywords[kw] = append(s.keywords[kw], Ref{
				Kind:    RefTable,
				Table:   tbl.Name,
				Alias:   tbl.Alias,
				FullRef: tbl.Alias,
			})
		}

		for _, col := range tbl.Columns {
			for _, kw := range col.Keywords {
				s.keywords[kw] = append(s.keywords[kw], Ref{
					Kind:    RefColumn,
					Table:   tbl.Name,
					Alias:   tbl.Alias,
					Column:  col.Name,
					FullRef: tbl.Alias + "." + col.Name,
				})
			}
		}
	}
}

// Tables returns table names in processing order.
func (s *Schema) Tables() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Table returns the named table, if present.
func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Lookup returns all candidate references for a keyword, in insertion
// order. The order reflects table processing order, not relevance.
func (s *Schema) Lookup(keyword string) []Ref {
	return s.keywords[strings.ToLower(keyword)]
}

// HasKeyword reports whether the keyword maps to any reference.
func (s *Schema) HasKeyword(keyword string) bool {
	_, ok := s.keywords[strings.ToLower(keyword)]
	return ok
}

// KeywordCount returns the number of distinct keywords in the map.
func (s *Schema) KeywordCount() int {
	return len(s.keywords)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
