// Package query holds the filter, pagination and ordering helpers shared by
// every filtered list endpoint, plus a small SQL builder that replaces
// per-resource hand-rolled list queries.
package query

import (
	"sort"
	"strings"
)

// Like returns a substring-match pattern for a LIKE clause, or the empty
// string when value is empty. LIKE metacharacters in value are passed
// through unescaped.
func Like(value string) string {
	if value == "" {
		return ""
	}
	return "%" + value + "%"
}

// Clean removes entries with empty values from a filter map and returns it.
func Clean(filters map[string]string) map[string]string {
	for k, v := range filters {
		if v == "" {
			delete(filters, k)
		}
	}
	return filters
}

// Skip returns the row offset for a 1-based page of the given size. Missing
// or non-positive inputs mean no offset.
func Skip(page, paginate int) int {
	if page > 0 && paginate > 0 {
		return (page - 1) * paginate
	}
	return 0
}

// Order returns an ORDER BY fragment for a single column. Direction "asc"
// sorts ascending, anything else descending.
func Order(column, direction string) string {
	if direction == "asc" {
		return column + " ASC"
	}
	return column + " DESC"
}

// Builder assembles a filtered list query and its matching count query.
// Conditions added via Where and WhereLike apply to both, so the reported
// total always reflects the full filtered set regardless of pagination.
type Builder struct {
	table    string
	columns  []string
	joins    []string
	wheres   []string
	args     []any
	orderBy  string
	limit    int
	offset   int
	hasLimit bool
}

func NewBuilder(table string) *Builder {
	return &Builder{table: table}
}

func (b *Builder) Select(columns ...string) *Builder {
	b.columns = append(b.columns, columns...)
	return b
}

// Join adds an INNER JOIN clause. Rows without a related record are dropped.
func (b *Builder) Join(table, on string) *Builder {
	b.joins = append(b.joins, "JOIN "+table+" ON "+on)
	return b
}

func (b *Builder) Where(cond string, args ...any) *Builder {
	b.wheres = append(b.wheres, cond)
	b.args = append(b.args, args...)
	return b
}

// WhereLike adds a substring-match condition on column. Empty values are
// ignored so callers can pass request filters through unconditionally.
func (b *Builder) WhereLike(column, value string) *Builder {
	if pattern := Like(value); pattern != "" {
		b.Where(column+" LIKE ?", pattern)
	}
	return b
}

// WhereLikes adds a substring-match condition for every remaining entry of
// the cleaned filter map, keyed by column. Columns are applied in sorted
// order so the generated SQL is stable.
func (b *Builder) WhereLikes(filters map[string]string) *Builder {
	filters = Clean(filters)
	cols := make([]string, 0, len(filters))
	for col := range filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		b.WhereLike(col, filters[col])
	}
	return b
}

func (b *Builder) OrderBy(column, direction string) *Builder {
	b.orderBy = Order(column, direction)
	return b
}

// Paginate applies a 1-based page window. A non-positive paginate leaves the
// result unlimited.
func (b *Builder) Paginate(page, paginate int) *Builder {
	if paginate > 0 {
		b.limit = paginate
		b.offset = Skip(page, paginate)
		b.hasLimit = true
	}
	return b
}

// Query returns the list SQL and its arguments.
func (b *Builder) Query() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	b.writeJoinsAndWheres(&sb)
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	args := b.args
	if b.hasLimit {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(append([]any{}, b.args...), b.limit, b.offset)
	}
	return sb.String(), args
}

// Count returns the count SQL over the same joins and conditions, without
// ordering or pagination.
func (b *Builder) Count() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(b.table)
	b.writeJoinsAndWheres(&sb)
	return sb.String(), b.args
}

func (b *Builder) writeJoinsAndWheres(sb *strings.Builder) {
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
	if len(b.wheres) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.wheres, " AND "))
	}
}
