// Package querybuilder renders the small set of Postgres statements the
// repositories issue, numbering placeholders as $1, $2, ...
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// binder collects bind values in placeholder order.
type binder struct {
	args []any
}

func (b *binder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// expand replaces each '?' in expr with the next placeholder. Extra '?'
// without a matching value are kept verbatim.
func (b *binder) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}
	var out strings.Builder
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && len(values) > 0 {
			out.WriteString(b.bind(values[0]))
			values = values[1:]
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}

type Condition interface {
	render(b *binder) string
}

type conditionFunc func(b *binder) string

func (f conditionFunc) render(b *binder) string { return f(b) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(b *binder) string {
		return column + " = " + b.bind(value)
	})
}

// Expr is a raw predicate whose '?' marks are bound to args in order.
func Expr(expr string, args ...any) Condition {
	return conditionFunc(func(b *binder) string {
		return b.expand(expr, args)
	})
}

func writeWhere(buf *strings.Builder, b *binder, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c.render(b))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, parts...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if len(s.columns) == 0 || strings.TrimSpace(s.table) == "" {
		return "", nil, fmt.Errorf("select needs columns and a table")
	}

	var (
		buf strings.Builder
		b   binder
	)
	fmt.Fprintf(&buf, "SELECT %s FROM %s", strings.Join(s.columns, ", "), s.table)
	writeWhere(&buf, &b, s.where)
	if len(s.orderBy) > 0 {
		buf.WriteString(" ORDER BY " + strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		buf.WriteString(" LIMIT " + strconv.Itoa(s.limit))
	}
	return buf.String(), b.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = columns
	return i
}

// Values sets the single row to insert.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = values
	return i
}

// Suffix appends raw SQL such as ON CONFLICT or RETURNING.
func (i *InsertBuilder) Suffix(sql string) *InsertBuilder {
	i.suffix = strings.TrimSpace(sql)
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(i.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(i.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(i.values) != len(i.columns):
		return "", nil, fmt.Errorf("insert has %d values for %d columns", len(i.values), len(i.columns))
	}

	var b binder
	placeholders := make([]string, len(i.values))
	for idx, v := range i.values {
		placeholders[idx] = b.bind(v)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", i.table, strings.Join(i.columns, ", "), strings.Join(placeholders, ", "))
	if i.suffix != "" {
		query += " " + i.suffix
	}
	return query, b.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (d *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	d.where = append(d.where, conditions...)
	return d
}

// ToSQL refuses to build an unconditional delete.
func (d *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(d.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(d.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("DELETE FROM " + d.table)
	writeWhere(&buf, &b, d.where)
	return buf.String(), b.args, nil
}
