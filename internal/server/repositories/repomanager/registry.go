// Package repomanager wires the schema catalog, the role resolver and the
// record accessor together and runs the embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/dmitrijs2005/linekeeper/internal/server/catalog"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/dmitrijs2005/linekeeper/internal/server/migrations"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// Names maps the logical tables onto physical table names.
type Names struct {
	Staff     string
	Operators string
}

// DefaultNames matches the embedded migrations.
var DefaultNames = Names{Staff: "users", Operators: "operators"}

func (n Names) physical(t models.Table) (string, bool) {
	switch t {
	case models.TableStaff:
		return n.Staff, n.Staff != ""
	case models.TableOperators:
		return n.Operators, n.Operators != ""
	}
	return "", false
}

// Registry builds each table's column map on first use and caches it
// until Refresh.
type Registry struct {
	d     dbx.Dialect
	cat   catalog.Catalog
	names Names

	mu   sync.Mutex
	maps map[models.Table]columns.ColumnMap
}

// NewRegistry returns a registry that introspects tables through db.
func NewRegistry(d dbx.Dialect, db dbx.DBTX, names Names) *Registry {
	return NewRegistryWithCatalog(d, catalog.New(d, db), names)
}

// NewRegistryWithCatalog is NewRegistry with an explicit catalog.
func NewRegistryWithCatalog(d dbx.Dialect, cat catalog.Catalog, names Names) *Registry {
	return &Registry{d: d, cat: cat, names: names, maps: make(map[models.Table]columns.ColumnMap)}
}

// Dialect is the SQL dialect the registry builds accessors for.
func (r *Registry) Dialect() dbx.Dialect {
	return r.d
}

// Map returns the column map of t. A table hosting more than one
// classification must carry a classification column.
func (r *Registry) Map(ctx context.Context, t models.Table) (columns.ColumnMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.maps[t]; ok {
		return m, nil
	}

	name, ok := r.names.physical(t)
	if !ok {
		return columns.ColumnMap{}, fmt.Errorf("%w: no physical table configured for %s", common.ErrSchemaUnavailable, t)
	}
	cols, err := r.cat.ColumnsOf(ctx, name)
	if err != nil {
		return columns.ColumnMap{}, err
	}
	m, err := columns.Build(name, cols)
	if err != nil {
		return columns.ColumnMap{}, err
	}
	if err := checkHosting(t, m); err != nil {
		return columns.ColumnMap{}, err
	}

	r.maps[t] = m
	return m, nil
}

func checkHosting(t models.Table, m columns.ColumnMap) error {
	if m.Has(columns.Classification) {
		return nil
	}
	if _, ok := t.ImpliedClassification(); ok {
		return nil
	}
	return fmt.Errorf("%w: table %s hosts %d classifications but has no classification column",
		common.ErrSchemaUnavailable, m.Table(), len(t.Hosts()))
}

// Users returns an accessor for m bound to db.
func (r *Registry) Users(m columns.ColumnMap, db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(r.d, m, db)
}

// Refresh drops every cached column map.
func (r *Registry) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maps = make(map[models.Table]columns.ColumnMap)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the registry's dialect.
// Migrations change the schema, so cached maps are dropped afterwards.
func (r *Registry) RunMigrations(ctx context.Context, db *sql.DB) error {
	sub, err := fs.Sub(migrations.Migrations, r.d.Name)
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", r.d.Name, err)
	}
	goose.SetBaseFS(sub)
	if err := goose.SetDialect(r.d.GooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	r.Refresh()
	return nil
}

var _ RepositoryManager = (*Registry)(nil)
