package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/users"
)

// RepositoryManager resolves column maps for the logical tables and vends
// accessors bound to a handle, which may be a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Map(ctx context.Context, t models.Table) (columns.ColumnMap, error)
	Users(m columns.ColumnMap, db dbx.DBTX) users.Repository
	Refresh()
}
