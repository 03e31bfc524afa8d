// Package sorter provides utilities for parsing and working with sorting options.
// It maps API-facing sort field names (e.g., "createdAt") onto database columns
// and converts the result into SQL-compatible order clauses.
package sorter

import "strings"

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Opt represents a single sorting option, consisting of a field and a direction.
type Opt struct {
	F string        // F is the column to sort by.
	D SortDirection // D is the sorting direction (asc or desc).
}

// ToSQL converts an Opt into an SQL-compatible clause (e.g., "created_at desc").
func (o Opt) ToSQL() string {
	return o.F + " " + string(o.D)
}

// FromQuery maps an API sort field and direction onto an Opt. Unknown fields
// fall back to the given column, and any direction other than "desc" sorts
// ascending.
func FromQuery(field, direction string, allowed map[string]string, fallback string) Opt {
	column, ok := allowed[field]
	if !ok {
		column = fallback
	}

	dir := Asc
	if strings.EqualFold(strings.TrimSpace(direction), string(Desc)) {
		dir = Desc
	}

	return Opt{F: column, D: dir}
}
