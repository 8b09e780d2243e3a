package database

import (
	"fmt"
	"strings"
)

// Dialect selects the bind-parameter syntax for a driver. Repository queries
// are written with ? placeholders and rebound for Postgres.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Rebind converts ? placeholders to $1..$n for Postgres; other dialects
// use the query as written.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SupportsLastInsertID reports whether the driver returns generated ids via
// Result.LastInsertId; Postgres requires a RETURNING clause instead.
func (d Dialect) SupportsLastInsertID() bool {
	return d != DialectPostgres
}
