// Package catalog introspects the live physical schema of a table.
package catalog

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/dbx"
)

// Column is one physical column as declared in the store.
type Column struct {
	Name string
	Type string
}

// Catalog lists the columns a table has, in declaration order.
type Catalog interface {
	ColumnsOf(ctx context.Context, table string) ([]Column, error)
}

const sqliteColumnsQuery = `SELECT name, type FROM pragma_table_info(?) ORDER BY cid`

const postgresColumnsQuery = `SELECT column_name, data_type
	FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = $1
	ORDER BY ordinal_position`

// SQLCatalog reads column metadata through the dialect's system views.
type SQLCatalog struct {
	db    dbx.DBTX
	query string
}

// New returns a catalog for the given dialect.
func New(d dbx.Dialect, db dbx.DBTX) *SQLCatalog {
	q := sqliteColumnsQuery
	if d.Name == dbx.Postgres.Name {
		q = postgresColumnsQuery
	}
	return &SQLCatalog{db: db, query: q}
}

// ColumnsOf fails with ErrSchemaUnavailable when the table cannot be read
// or does not exist; it never returns an empty list without an error.
func (c *SQLCatalog) ColumnsOf(ctx context.Context, table string) ([]Column, error) {
	rows, err := c.db.QueryContext(ctx, c.query, table)
	if err != nil {
		return nil, fmt.Errorf("%w: introspect %s: %w", common.ErrSchemaUnavailable, table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.Type); err != nil {
			return nil, fmt.Errorf("%w: scan column of %s: %w", common.ErrSchemaUnavailable, table, err)
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate columns of %s: %w", common.ErrSchemaUnavailable, table, err)
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %s has no columns or does not exist", common.ErrSchemaUnavailable, table)
	}

	return cols, nil
}
