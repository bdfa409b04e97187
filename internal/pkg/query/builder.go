// Package query builds parameterised Cloud Spanner SELECT statements.
package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Builder is an immutable SELECT statement under construction. Parameter
// names are generated (@p0, @p1, ...) so conditions never collide.
type Builder struct {
	table   string
	columns []string
	where   []Condition
	orderBy string
	dir     Direction
}

// From starts a statement over table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns; none selects *.
func (b *Builder) Select(columns ...string) *Builder {
	c := b.clone()
	c.columns = append(c.columns, columns...)
	return c
}

// Where adds a condition; conditions are joined with AND.
func (b *Builder) Where(cond Condition) *Builder {
	c := b.clone()
	c.where = append(c.where, cond)
	return c
}

// OrderBy sets the sort column.
func (b *Builder) OrderBy(column string, dir Direction) *Builder {
	c := b.clone()
	c.orderBy, c.dir = column, dir
	return c
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	params := make(map[string]interface{})
	var sql strings.Builder

	cols := "*"
	if len(b.columns) > 0 {
		cols = strings.Join(b.columns, ", ")
	}
	fmt.Fprintf(&sql, "SELECT %s FROM %s", cols, b.table)

	if len(b.where) > 0 {
		parts := make([]string, 0, len(b.where))
		for _, cond := range b.where {
			fragment, condParams := cond.SQL(len(params))
			parts = append(parts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
		}
		sql.WriteString(" WHERE " + strings.Join(parts, " AND "))
	}

	if b.orderBy != "" {
		sql.WriteString(" ORDER BY " + b.orderBy)
		if b.dir == Desc {
			sql.WriteString(" DESC")
		} else {
			sql.WriteString(" ASC")
		}
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

func (b *Builder) clone() *Builder {
	c := *b
	c.columns = append([]string(nil), b.columns...)
	c.where = append([]Condition(nil), b.where...)
	return &c
}
