package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLRepository implements Repository for any dialect in dbx.
type SQLRepository struct {
	d      dbx.Dialect
	m      columns.ColumnMap
	db     dbx.DBTX
	intKey bool
}

// NewSQLRepository binds the column map of one table to a handle, which
// may be a transaction.
func NewSQLRepository(d dbx.Dialect, m columns.ColumnMap, db dbx.DBTX) *SQLRepository {
	return &SQLRepository{d: d, m: m, db: db, intKey: d.IsIntegerType(m.KeyColumn().Type)}
}

// Get reads one row without its secret.
func (r *SQLRepository) Get(ctx context.Context, id string) (Values, error) {
	return r.getOne(ctx, id, r.readable(false), false)
}

// GetForUpdate reads one row including its secret and, where the store
// supports it, locks the row until the surrounding transaction ends.
func (r *SQLRepository) GetForUpdate(ctx context.Context, id string) (Values, error) {
	return r.getOne(ctx, id, r.readable(true), true)
}

// FindBy returns the first row, in key order, whose role column equals
// value. The secret is included so callers can verify credentials.
func (r *SQLRepository) FindBy(ctx context.Context, role columns.Role, value string) (Values, error) {
	col, ok := r.m.Column(role)
	if !ok || value == "" {
		return nil, common.ErrorNotFound
	}
	roles := r.readable(true)

	s := newStmt(r.d).raw("SELECT ").idents(r.names(roles)).
		raw(" FROM ").ident(r.m.Table()).
		raw(" WHERE ").ident(col.Name).raw(" = ").bind(value).
		raw(" ORDER BY ").ident(r.m.KeyColumn().Name).raw(" LIMIT 1")

	return r.scanOne(r.db.QueryRowContext(ctx, s.String(), s.args...), roles)
}

// List returns up to limit rows ordered by the key column. limit <= 0
// means no limit.
func (r *SQLRepository) List(ctx context.Context, limit int) ([]Values, error) {
	roles := r.readable(false)

	s := newStmt(r.d).raw("SELECT ").idents(r.names(roles)).
		raw(" FROM ").ident(r.m.Table()).
		raw(" ORDER BY ").ident(r.m.KeyColumn().Name).raw(" ASC")
	if limit > 0 {
		s.raw(" LIMIT ").bind(limit)
	}

	rows, err := r.db.QueryContext(ctx, s.String(), s.args...)
	if err != nil {
		return nil, fmt.Errorf("db error: list %s: %w", r.m.Table(), err)
	}
	defer rows.Close()

	var out []Values
	for rows.Next() {
		v, err := r.scan(rows.Scan, roles)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: iterate %s: %w", r.m.Table(), err)
	}
	return out, nil
}

// Insert writes the resolvable subset of v and returns the key the table
// assigned. An identifier in v is ignored.
func (r *SQLRepository) Insert(ctx context.Context, v Values) (string, error) {
	roles := r.writable(v)
	if len(roles) == 0 {
		return "", fmt.Errorf("%w: none of the supplied fields exist in %s", common.ErrNoInsertableColumns, r.m.Table())
	}

	s := newStmt(r.d).raw("INSERT INTO ").ident(r.m.Table()).
		raw(" (").idents(r.names(roles)).raw(") VALUES (")
	for i, role := range roles {
		if i > 0 {
			s.raw(", ")
		}
		s.bind(nullable(v[role]))
	}
	s.raw(") RETURNING ").ident(r.m.KeyColumn().Name)

	var id sql.NullString
	if err := r.db.QueryRowContext(ctx, s.String(), s.args...).Scan(&id); err != nil {
		return "", r.writeError("insert into", err)
	}
	return id.String, nil
}

// Update applies the resolvable subset of v to the row. Fields the table
// does not have are skipped silently.
func (r *SQLRepository) Update(ctx context.Context, id string, v Values) error {
	key, ok := r.keyArg(id)
	if !ok {
		return common.ErrorNotFound
	}

	roles := r.writable(v)
	if len(roles) == 0 {
		return r.exists(ctx, key)
	}

	s := newStmt(r.d).raw("UPDATE ").ident(r.m.Table()).raw(" SET ")
	for i, role := range roles {
		if i > 0 {
			s.raw(", ")
		}
		col, _ := r.m.Column(role)
		s.ident(col.Name).raw(" = ").bind(nullable(v[role]))
	}
	s.raw(" WHERE ").ident(r.m.KeyColumn().Name).raw(" = ").bind(key)

	res, err := r.db.ExecContext(ctx, s.String(), s.args...)
	if err != nil {
		return r.writeError("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the row and returns how many rows went away. Zero rows
// is reported as ErrorNotFound.
func (r *SQLRepository) Delete(ctx context.Context, id string) (int64, error) {
	key, ok := r.keyArg(id)
	if !ok {
		return 0, common.ErrorNotFound
	}

	s := newStmt(r.d).raw("DELETE FROM ").ident(r.m.Table()).
		raw(" WHERE ").ident(r.m.KeyColumn().Name).raw(" = ").bind(key)

	res, err := r.db.ExecContext(ctx, s.String(), s.args...)
	if err != nil {
		return 0, fmt.Errorf("db error: delete from %s: %w", r.m.Table(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: rows affected: %w", err)
	}
	if n == 0 {
		return 0, common.ErrorNotFound
	}
	return n, nil
}

func (r *SQLRepository) getOne(ctx context.Context, id string, roles []columns.Role, lock bool) (Values, error) {
	key, ok := r.keyArg(id)
	if !ok {
		return nil, common.ErrorNotFound
	}

	s := newStmt(r.d).raw("SELECT ").idents(r.names(roles)).
		raw(" FROM ").ident(r.m.Table()).
		raw(" WHERE ").ident(r.m.KeyColumn().Name).raw(" = ").bind(key)
	if lock && r.d.LockClause() != "" {
		s.raw(" ").raw(r.d.LockClause())
	}

	return r.scanOne(r.db.QueryRowContext(ctx, s.String(), s.args...), roles)
}

func (r *SQLRepository) exists(ctx context.Context, key any) error {
	s := newStmt(r.d).raw("SELECT 1 FROM ").ident(r.m.Table()).
		raw(" WHERE ").ident(r.m.KeyColumn().Name).raw(" = ").bind(key)

	var one int
	err := r.db.QueryRowContext(ctx, s.String(), s.args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: probe %s: %w", r.m.Table(), err)
	}
	return nil
}

func (r *SQLRepository) scanOne(row *sql.Row, roles []columns.Role) (Values, error) {
	v, err := r.scan(row.Scan, roles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	return v, err
}

func (r *SQLRepository) scan(scan func(dest ...any) error, roles []columns.Role) (Values, error) {
	cells := make([]sql.NullString, len(roles))
	dest := make([]any, len(roles))
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: scan %s: %w", r.m.Table(), err)
	}

	v := make(Values, len(roles))
	for i, role := range roles {
		v[role] = cells[i].String
	}
	return v, nil
}

// readable lists the roles a read selects, always including the key.
func (r *SQLRepository) readable(withSecret bool) []columns.Role {
	var out []columns.Role
	for _, role := range r.m.Resolved() {
		if role == columns.Secret && !withSecret {
			continue
		}
		out = append(out, role)
	}
	return out
}

// writable lists the roles of v the table can store.
func (r *SQLRepository) writable(v Values) []columns.Role {
	var out []columns.Role
	for _, role := range r.m.Resolved() {
		if role == columns.Identifier {
			continue
		}
		if _, ok := v[role]; ok {
			out = append(out, role)
		}
	}
	return out
}

func (r *SQLRepository) names(roles []columns.Role) []string {
	out := make([]string, len(roles))
	for i, role := range roles {
		col, _ := r.m.Column(role)
		out[i] = col.Name
	}
	return out
}

// keyArg converts an opaque id into the bind value of the key column.
// An id that cannot be a key of this table matches no row.
func (r *SQLRepository) keyArg(id string) (any, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	if !r.intKey {
		return id, true
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

func (r *SQLRepository) writeError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s: %w", common.ErrAlreadyExists, op, r.m.Table(), err)
	}
	return fmt.Errorf("db error: %s %s: %w", op, r.m.Table(), err)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation recognises duplicate-key failures from both stores.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
