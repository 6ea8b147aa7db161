package repo

import (
	"fmt"
	"strings"
)

// updateBuilder accumulates (column, positional placeholder, value) triples
// for a dynamic SET clause. Values only ever travel through placeholders.
type updateBuilder struct {
	sets []string
	args []any
}

// Set binds value to column through the next positional placeholder.
func (b *updateBuilder) Set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// SetRaw appends a server-side assignment with no bound value, e.g. "updated_at = NOW()".
func (b *updateBuilder) SetRaw(assignment string) {
	b.sets = append(b.sets, assignment)
}

// Empty reports whether no column has been set yet.
func (b *updateBuilder) Empty() bool { return len(b.sets) == 0 }

// SetClause returns the comma-joined assignment list.
func (b *updateBuilder) SetClause() string { return strings.Join(b.sets, ", ") }

// Next returns the placeholder index for the next bound value (for WHERE clauses).
func (b *updateBuilder) Next() int { return len(b.args) + 1 }

// Args returns the bound values followed by extra (WHERE-clause) values.
func (b *updateBuilder) Args(extra ...any) []any {
	return append(b.args, extra...)
}
