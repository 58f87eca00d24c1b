package dbx

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect describes the SQL differences between the stores linekeeper
// runs on. Only identifiers that came from schema introspection are ever
// passed to QuoteIdent; values always travel as bind parameters.
type Dialect struct {
	// Name is the configuration value that selects the dialect.
	Name string
	// DriverName is the database/sql driver registered for it.
	DriverName string
	// GooseDialect is the goose dialect used for schema migrations.
	GooseDialect string

	numbered   bool
	lockClause string
}

var (
	SQLite = Dialect{
		Name:         "sqlite",
		DriverName:   "sqlite",
		GooseDialect: "sqlite3",
	}
	Postgres = Dialect{
		Name:         "postgres",
		DriverName:   "pgx",
		GooseDialect: "pgx",
		numbered:     true,
		lockClause:   "FOR UPDATE",
	}
)

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SQLite.Name, "sqlite3":
		return SQLite, nil
	case Postgres.Name, "postgresql", "pgx":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
}

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// QuoteIdent escapes a column or table name for substitution into
// statement text.
func (d Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// LockClause is appended to a SELECT that reads a row about to be moved.
// SQLite has no row locks; its write transaction already serializes.
func (d Dialect) LockClause() string {
	return d.lockClause
}

// IsIntegerType reports whether a declared column type stores integers,
// following each store's own typing rules.
func (d Dialect) IsIntegerType(declared string) bool {
	t := strings.ToUpper(strings.TrimSpace(declared))
	if !d.numbered {
		// SQLite affinity rule: any declared type containing "INT".
		return strings.Contains(t, "INT")
	}
	switch t {
	case "SMALLINT", "INTEGER", "BIGINT", "INT", "INT2", "INT4", "INT8", "SERIAL", "BIGSERIAL":
		return true
	}
	return false
}
