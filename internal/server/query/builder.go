// Package query renders filter and pagination inputs into parameterized SQL.
//
// One Spec produces two plans: a data plan that fetches a page of rows and a
// count plan that counts every matching row. Each plan is rendered in its own
// pass and numbers its placeholders from 1, so the count plan never carries
// pagination parameters and never depends on the data plan's numbering.
// Caller input only ever travels as bound parameters.
package query

import (
	"strings"
)

// Predicate is a trusted, code-defined condition template containing exactly
// one "?" slot, e.g. "role=?" or "username LIKE ?". Predicates must never be
// built from request input.
type Predicate string

const slot = "?"

func (p Predicate) render(placeholder string) string {
	return strings.Replace(string(p), slot, placeholder, 1)
}

// Filter pairs a predicate with its operand.
type Filter struct {
	Predicate Predicate
	Value     Value
}

// Spec is an ordered list of filters. Order decides both the AND rendering
// and parameter numbering. Duplicates are kept.
type Spec struct {
	Filters []Filter
}

// Where appends a filter and returns the spec for chaining.
func (s Spec) Where(p Predicate, v Value) Spec {
	filters := make([]Filter, len(s.Filters), len(s.Filters)+1)
	copy(filters, s.Filters)
	s.Filters = append(filters, Filter{Predicate: p, Value: v})
	return s
}

func (s Spec) Len() int { return len(s.Filters) }

// Pagination selects a window of rows. Validation of the bounds belongs to
// the caller.
type Pagination struct {
	Limit  int64
	Offset int64
}

// Plan is one statement plus its ordered parameters.
type Plan struct {
	SQL    string
	Params []Value

	dialect Dialect
}

// Args encodes Params for the driver.
func (p Plan) Args() []any {
	d := p.dialect
	if d == nil {
		d = Postgres
	}
	args := make([]any, len(p.Params))
	for i, v := range p.Params {
		args[i] = d.Encode(v)
	}
	return args
}

// Builder renders plans against one table. Table, columns and order key are
// identifiers fixed at construction.
type Builder struct {
	dialect Dialect
	table   string
	columns []string
	orderBy string
}

// NewBuilder returns a Builder for table selecting columns, ordered by "id".
func NewBuilder(d Dialect, table string, columns ...string) *Builder {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Builder{dialect: d, table: table, columns: cols, orderBy: "id"}
}

// OrderBy replaces the ordering key. It must be unique per row so that pages
// are stable across calls.
func (b *Builder) OrderBy(column string) *Builder {
	nb := *b
	nb.orderBy = column
	return &nb
}

// Build renders the data and count plans for spec and page.
func (b *Builder) Build(spec Spec, page Pagination) (data Plan, count Plan) {
	return b.DataPlan(spec, page), b.CountPlan(spec)
}

// DataPlan renders SELECT <columns> … ORDER BY <key> LIMIT $n+1 OFFSET $n+2.
func (b *Builder) DataPlan(spec Spec, page Pagination) Plan {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	params := b.where(&sb, spec)

	params = append(params, Int(page.Limit), Int(page.Offset))
	sb.WriteString(" ORDER BY ")
	sb.WriteString(b.orderBy)
	sb.WriteString(" LIMIT ")
	sb.WriteString(b.dialect.Placeholder(len(params) - 1))
	sb.WriteString(" OFFSET ")
	sb.WriteString(b.dialect.Placeholder(len(params)))

	return Plan{SQL: sb.String(), Params: params, dialect: b.dialect}
}

// CountPlan renders SELECT count(*) … with the filter parameters only.
func (b *Builder) CountPlan(spec Spec) Plan {
	var sb strings.Builder
	sb.WriteString("SELECT count(*) FROM ")
	sb.WriteString(b.table)

	params := b.where(&sb, spec)

	return Plan{SQL: sb.String(), Params: params, dialect: b.dialect}
}

// where writes the WHERE clause for spec, numbering from 1, and returns the
// matching parameters. Nothing is written for an empty spec.
func (b *Builder) where(sb *strings.Builder, spec Spec) []Value {
	params := make([]Value, 0, len(spec.Filters)+2)
	for i, f := range spec.Filters {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		params = append(params, f.Value)
		sb.WriteString(f.Predicate.render(b.dialect.Placeholder(len(params))))
	}
	return params
}
