package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// compiler accumulates SQL text and positional ($n) arguments.
type compiler struct {
	buf  strings.Builder
	args []any
}

func (c *compiler) write(parts ...string) {
	for _, p := range parts {
		c.buf.WriteString(p)
	}
}

func (c *compiler) bind(value any) string {
	c.args = append(c.args, value)
	return "$" + strconv.Itoa(len(c.args))
}

func (c *compiler) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	c.write(" WHERE ")
	And(conditions...).compile(c, false)
}

type Condition interface {
	// compile writes the condition. nested is set when the condition is an
	// operand of another AND/OR and must parenthesize itself.
	compile(c *compiler, nested bool)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition  { return compareCondition{column, "=", value} }
func Lte(column string, value any) Condition { return compareCondition{column, "<=", value} }
func Gte(column string, value any) Condition { return compareCondition{column, ">=", value} }

func (cc compareCondition) compile(c *compiler, _ bool) {
	c.write(cc.column, " ", cc.op, " ", c.bind(cc.value))
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (ic inCondition) compile(c *compiler, _ bool) {
	if len(ic.values) == 0 {
		c.write("1=0")
		return
	}
	placeholders := make([]string, len(ic.values))
	for i, v := range ic.values {
		placeholders[i] = c.bind(v)
	}
	c.write(ic.column, " IN (", strings.Join(placeholders, ", "), ")")
}

type isNullCondition string

func IsNull(column string) Condition { return isNullCondition(column) }

func (n isNullCondition) compile(c *compiler, _ bool) {
	c.write(string(n), " IS NULL")
}

type groupCondition struct {
	op    string
	terms []Condition
}

// And joins terms with AND. A single term is emitted unwrapped.
func And(terms ...Condition) Condition { return groupCondition{op: " AND ", terms: terms} }

// Or joins terms with OR. A single term is emitted unwrapped.
func Or(terms ...Condition) Condition { return groupCondition{op: " OR ", terms: terms} }

func (g groupCondition) compile(c *compiler, nested bool) {
	switch len(g.terms) {
	case 0:
		c.write("1=1")
		return
	case 1:
		g.terms[0].compile(c, nested)
		return
	}

	if nested {
		c.write("(")
	}
	for i, term := range g.terms {
		if i > 0 {
			c.write(g.op)
		}
		term.compile(c, true)
	}
	if nested {
		c.write(")")
	}
}

type exprCondition struct {
	expr string
	args []any
}

// Expr is a raw fragment where each ? binds the next arg.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (e exprCondition) compile(c *compiler, _ bool) {
	c.write(bindQuestionMarks(c, e.expr, e.args))
}

func bindQuestionMarks(c *compiler, expr string, args []any) string {
	if len(args) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for _, r := range expr {
		if r == '?' && next < len(args) {
			out.WriteString(c.bind(args[next]))
			next++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

type SelectBuilder struct {
	distinct bool
	columns  []string
	table    string
	where    []Condition
	orderBy  []string
	limit    int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.distinct = true
	return b
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit of zero or less leaves the query unbounded.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	c := &compiler{}
	c.write("SELECT ")
	if b.distinct {
		c.write("DISTINCT ")
	}
	c.write(strings.Join(b.columns, ", "), " FROM ", b.table)
	c.where(b.where)
	if len(b.orderBy) > 0 {
		c.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		c.write(" LIMIT ", strconv.Itoa(b.limit))
	}

	return c.buf.String(), c.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	c := &compiler{args: make([]any, 0, len(b.rows)*len(b.columns))}
	c.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			c.write(", ")
		}
		placeholders := make([]string, len(row))
		for j, value := range row {
			placeholders[j] = c.bind(value)
		}
		c.write("(", strings.Join(placeholders, ", "), ")")
	}
	if b.suffix != "" {
		c.write(" ", b.suffix)
	}

	return c.buf.String(), c.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}

	c := &compiler{}
	c.write("DELETE FROM ", b.table)
	c.where(b.where)
	return c.buf.String(), c.args, nil
}
