// Package builder is the fluent SQL assembler used when no template
// matches with sufficient confidence. It renders the same SQL Server
// dialect as the template catalog.
package builder

import (
	"strconv"
	"strings"

	"github.com/gallerydesk/nlsql/pkg/schema"
)

// Query accumulates clause fragments and renders them once on Build. It is
// mutated imperatively by chained calls; Reset clears it for reuse.
type Query struct {
	schema *schema.Schema

	selects   []string
	fromTable string
	fromAlias string
	joins     []join
	wheres    []string
	groupBys  []string
	havings   []string
	orderBys  []string
	limit     int
}

type join struct {
	joinType  string
	table     string
	alias     string
	condition string
}

// New creates a builder bound to the given schema for join derivation.
func New(s *schema.Schema) *Query {
	return &Query{schema: s}
}

// Reset clears all accumulated state.
func (q *Query) Reset() *Query {
	*q = Query{schema: q.schema}
	return q
}

// Select appends select expressions.
func (q *Query) Select(exprs ...string) *Query {
	q.selects = append(q.selects, exprs...)
	return q
}

// From sets the primary table and alias.
func (q *Query) From(table, alias string) *Query {
	q.fromTable = table
	q.fromAlias = alias
	return q
}

// Join appends a join clause.
func (q *Query) Join(joinType, table, alias, condition string) *Query {
	q.joins = append(q.joins, join{joinType, table, alias, condition})
	return q
}

// LeftJoin appends a LEFT JOIN clause.
func (q *Query) LeftJoin(table, alias, condition string) *Query {
	return q.Join("LEFT JOIN", table, alias, condition)
}

// Where appends a filter condition; conditions are ANDed on Build.
func (q *Query) Where(condition string) *Query {
	if strings.TrimSpace(condition) != "" {
		q.wheres = append(q.wheres, condition)
	}
	return q
}

// GroupBy appends grouping columns.
func (q *Query) GroupBy(cols ...string) *Query {
	q.groupBys = append(q.groupBys, cols...)
	return q
}

// Having appends a having condition.
func (q *Query) Having(condition string) *Query {
	if strings.TrimSpace(condition) != "" {
		q.havings = append(q.havings, condition)
	}
	return q
}

// OrderBy appends an order expression.
func (q *Query) OrderBy(expr string) *Query {
	q.orderBys = append(q.orderBys, expr)
	return q
}

// Limit sets the row limit, rendered as SELECT TOP n.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// fromPriority fixes which table becomes the FROM anchor during AutoJoin.
var fromPriority = []string{"Sales", "Customers", "Staff", "Galleries", "SaleItems"}

// AutoJoin picks the primary table by fixed priority and derives the join
// chain for the remaining required tables from the schema's relationship
// graph. Tables with no join path are skipped, matching GenerateJoins.
func (q *Query) AutoJoin(requiredTables []string) *Query {
	if len(requiredTables) == 0 {
		return q
	}

	required := make(map[string]bool, len(requiredTables))
	for _, t := range requiredTables {
		required[t] = true
	}

	// The relationship graph is a star through the central table, so a
	// multi-table chain is only joinable when it participates.
	if len(requiredTables) > 1 && !required[schema.CentralTable()] {
		requiredTables = append([]string{schema.CentralTable()}, requiredTables...)
		required[schema.CentralTable()] = true
	}

	primary := requiredTables[0]
	for _, t := range fromPriority {
		if required[t] {
			primary = t
			break
		}
	}

	tbl, ok := q.schema.Table(primary)
	alias := primary
	if ok {
		alias = tbl.Alias
	}
	q.From(primary, alias)

	for _, j := range q.schema.GenerateJoins(requiredTables) {
		if j.Table == primary {
			continue
		}
		q.LeftJoin(j.Table, j.Alias, j.Condition)
	}
	return q
}

// Aliases returns the set of table aliases the query currently exposes.
func (q *Query) Aliases() map[string]bool {
	aliases := make(map[string]bool, len(q.joins)+1)
	if q.fromAlias != "" {
		aliases[q.fromAlias] = true
	}
	for _, j := range q.joins {
		aliases[j.alias] = true
	}
	return aliases
}

// Build renders the accumulated state as a complete statement. A builder
// with no columns or clauses still produces valid SQL: SELECT * plus FROM.
func (q *Query) Build() string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if q.limit > 0 {
		b.WriteString("TOP ")
		b.WriteString(strconv.Itoa(q.limit))
		b.WriteString(" ")
	}
	if len(q.selects) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(q.selects, ", "))
	}

	b.WriteString("\nFROM ")
	b.WriteString(q.fromTable)
	if q.fromAlias != "" {
		b.WriteString(" ")
		b.WriteString(q.fromAlias)
	}

	for _, j := range q.joins {
		b.WriteString("\n")
		b.WriteString(j.joinType)
		b.WriteString(" ")
		b.WriteString(j.table)
		b.WriteString(" ")
		b.WriteString(j.alias)
		b.WriteString(" ON ")
		b.WriteString(j.condition)
	}

	if len(q.wheres) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(q.wheres, " AND "))
	}
	if len(q.groupBys) > 0 {
		b.WriteString("\nGROUP BY ")
		b.WriteString(strings.Join(q.groupBys, ", "))
	}
	if len(q.havings) > 0 {
		b.WriteString("\nHAVING ")
		b.WriteString(strings.Join(q.havings, " AND "))
	}
	if len(q.orderBys) > 0 {
		b.WriteString("\nORDER BY ")
		b.WriteString(strings.Join(q.orderBys, ", "))
	}

	return b.String()
}
