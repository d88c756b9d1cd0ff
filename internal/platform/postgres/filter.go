package postgres

import (
	"fmt"
	"strings"
)

// Filter composes a WHERE clause from two groups: base equality conditions
// (owner scoping plus optional caller-chosen filters) and an optional
// case-insensitive substring search across a declared set of text columns.
// The groups are always combined by AND, so a search can never widen the
// result set beyond the base scope.
//
// Base conditions are rendered in insertion order, keeping the generated SQL
// stable and reproducible in tests.
type Filter struct {
	columns      []string
	values       []any
	searchFields []string
	searchTerm   string
}

// NewFilter creates an empty Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Equal adds a base equality condition on the given column.
func (f *Filter) Equal(column string, value any) *Filter {
	f.columns = append(f.columns, column)
	f.values = append(f.values, value)
	return f
}

// Search declares a disjunctive ILIKE substring match on the given columns.
// The search group is dropped entirely when the trimmed term is empty or no
// columns are declared, leaving the base conditions untouched.
func (f *Filter) Search(columns []string, term string) *Filter {
	f.searchFields = columns
	f.searchTerm = strings.TrimSpace(term)
	return f
}

// Where renders the filter as a SQL WHERE clause with numbered placeholders
// starting at $1, returning the clause (including the leading " WHERE ", or
// an empty string when there are no conditions) and its arguments.
func (f *Filter) Where() (string, []any) {
	var conds []string
	var args []any

	for i, col := range f.columns {
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, f.values[i])
	}

	if f.searchTerm != "" && len(f.searchFields) > 0 {
		pattern := "%" + f.searchTerm + "%"
		parts := make([]string, 0, len(f.searchFields))
		for _, col := range f.searchFields {
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, len(args)+1))
			args = append(args, pattern)
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}
