package schema

// Relationship is a directed join edge between two known tables. The set is
// hand-curated, not derived from the schema input, so joins can only be
// generated between the five known tables.
type Relationship struct {
	FromTable   string
	ToTable     string
	FromKey     string
	ToKey       string
	Cardinality string // "1:N", "N:1"
}

// centralTable anchors every generated join chain.
const centralTable = "Sales"

// joinOrder fixes the order in which required tables are attached.
var joinOrder = []string{"Customers", "Staff", "Galleries", "SaleItems"}

// knownRelationships is the fixed join graph, all edges touching Sales.
var knownRelationships = []Relationship{
	{FromTable: "Sales", ToTable: "Customers", FromKey: "CustID", ToKey: "CustID", Cardinality: "N:1"},
	{FromTable: "Sales", ToTable: "Staff", FromKey: "StaffID", ToKey: "StaffID", Cardinality: "N:1"},
	{FromTable: "Sales", ToTable: "Galleries", FromKey: "GalleryID", ToKey: "GalleryID", Cardinality: "N:1"},
	{FromTable: "SaleItems", ToTable: "Sales", FromKey: "SaleID", ToKey: "SaleID", Cardinality: "N:1"},
}

// Relationships returns the fixed relationship set.
func (s *Schema) Relationships() []Relationship {
	out := make([]Relationship, len(s.relationships))
	copy(out, s.relationships)
	return out
}

// Join is one rendered LEFT JOIN step.
type Join struct {
	Table     string
	Alias     string
	Condition string
}

// SQL renders the join clause.
func (j Join) SQL() string {
	return "LEFT JOIN " + j.Table + " " + j.Alias + " ON " + j.Condition
}

// GenerateJoins walks the fixed join order and emits a LEFT JOIN for every
// required table reachable from an already-added table. Tables with no
// relationship path from the central table are skipped silently.
func (s *Schema) GenerateJoins(requiredTables []string) []Join {
	required := make(map[string]bool, len(requiredTables))
	for _, t := range requiredTables {
		required[t] = true
	}

	added := map[string]bool{}
	if required[centralTable] {
		added[centralTable] = true
	}

	var joins []Join
	for _, table := range joinOrder {
		if !required[table] || added[table] {
			continue
		}
		join, ok := s.joinFor(table, added)
		if !ok {
			continue
		}
		joins = append(joins, join)
		added[table] = true
	}
	return joins
}

// joinFor finds a relationship connecting table to any already-added table
// and renders the join condition with both aliases.
func (s *Schema) joinFor(table string, added map[string]bool) (Join, bool) {
	alias := s.aliasFor(table)
	for _, rel := range s.relationships {
		switch {
		case rel.ToTable == table && added[rel.FromTable]:
			from := s.aliasFor(rel.FromTable)
			return Join{
				Table:     table,
				Alias:     alias,
				Condition: from + "." + rel.FromKey + " = " + alias + "." + rel.ToKey,
			}, true
		case rel.FromTable == table && added[rel.ToTable]:
			to := s.aliasFor(rel.ToTable)
			return Join{
				Table:     table,
				Alias:     alias,
				Condition: alias + "." + rel.FromKey + " = " + to + "." + rel.ToKey,
			}, true
		}
	}
	return Join{}, false
}

// aliasFor resolves a table alias, falling back to the fixed lookup when
// the table was never parsed (joins are still renderable for known tables).
func (s *Schema) aliasFor(table string) string {
	if t, ok := s.tables[table]; ok {
		return t.Alias
	}
	if alias, ok := knownAliases[table]; ok {
		return alias
	}
	return ""
}

// CentralTable returns the table every join chain starts from.
func CentralTable() string {
	return centralTable
}
