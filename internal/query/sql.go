package query

import (
	"fmt"
	"strings"
)

// likeEscape is the LIKE escape character. '!' behaves the same in SQLite,
// MySQL and PostgreSQL string literals, unlike a backslash.
const likeEscape = "!"

// Statement is a Plan compiled to a parameterized WHERE clause and a
// deterministic ORDER BY. Values are never interpolated into the SQL text.
type Statement struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
}

// Compile converts a Plan into SQL fragments using '?' placeholders
func Compile(p Plan) Statement {
	var conds []string
	var args []any

	if p.Status != "" {
		conds = append(conds, fmt.Sprintf("%s = ?", FieldStatus))
		args = append(args, string(p.Status))
	}

	// text is compared against the folded columns; the database never folds
	if p.Search != "" {
		pattern := "%" + escapeLike(p.Search) + "%"
		var ors []string
		for _, f := range p.searchFields() {
			ors = append(ors, fmt.Sprintf("%s LIKE ? ESCAPE '%s'", f.Folded(), likeEscape))
			args = append(args, pattern)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	for _, eq := range p.Facets {
		conds = append(conds, fmt.Sprintf("%s = ?", eq.Field.Folded()))
		args = append(args, eq.Value)
	}

	conds = append(conds, fmt.Sprintf("%s >= ?", FieldPrice))
	args = append(args, p.MinPrice)

	if p.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("%s <= ?", FieldPrice))
		args = append(args, *p.MaxPrice)
	}

	return Statement{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: compileOrder(p.Order),
		Limit:   p.Limit,
		Offset:  p.Offset,
	}
}

// SelectSQL returns the paged SELECT for the statement
func (s Statement) SelectSQL(table, columns string) (string, []any) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT ? OFFSET ?",
		columns, table, s.Where, s.OrderBy)
	args := make([]any, 0, len(s.Args)+2)
	args = append(args, s.Args...)
	args = append(args, s.Limit, s.Offset)
	return sql, args
}

// CountSQL returns the unpaged COUNT for the statement
func (s Statement) CountSQL(table string) (string, []any) {
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, s.Where)
	return sql, append([]any(nil), s.Args...)
}

func compileOrder(terms []OrderTerm) string {
	if len(terms) == 0 {
		return string(FieldID) + " ASC"
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		dir := "ASC"
		if t.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("%s %s", t.Field, dir))
	}
	return strings.Join(parts, ", ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}
