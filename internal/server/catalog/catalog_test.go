package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsOf_SQLite(t *testing.T) {
	db, err := dbx.Open(context.Background(), dbx.SQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE operators (
		operator_id INTEGER PRIMARY KEY,
		nomina TEXT,
		badge_code TEXT
	)`)
	require.NoError(t, err)

	cols, err := New(dbx.SQLite, db).ColumnsOf(context.Background(), "operators")
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{Name: "operator_id", Type: "INTEGER"},
		{Name: "nomina", Type: "TEXT"},
		{Name: "badge_code", Type: "TEXT"},
	}, cols)
}

func TestColumnsOf_SQLite_ReflectsLiveSchema(t *testing.T) {
	db, err := dbx.Open(context.Background(), dbx.SQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)`)
	require.NoError(t, err)

	c := New(dbx.SQLite, db)
	cols, err := c.ColumnsOf(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, cols, 2)

	_, err = db.Exec(`ALTER TABLE users ADD COLUMN badge_code TEXT`)
	require.NoError(t, err)

	cols, err = c.ColumnsOf(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "badge_code", cols[2].Name)
}

func TestColumnsOf_MissingTable(t *testing.T) {
	db, err := dbx.Open(context.Background(), dbx.SQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = New(dbx.SQLite, db).ColumnsOf(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrSchemaUnavailable)
}

func TestColumnsOf_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	q := `(?s)^SELECT\s+column_name,\s*data_type\s+FROM\s+information_schema\.columns\s+WHERE\s+table_schema\s*=\s*current_schema\(\)\s+AND\s+table_name\s*=\s*\$1\s+ORDER\s+BY\s+ordinal_position$`
	mock.ExpectQuery(q).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}).
			AddRow("id", "integer").
			AddRow("email", "character varying"))

	cols, err := New(dbx.Postgres, db).ColumnsOf(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []Column{{Name: "id", Type: "integer"}, {Name: "email", Type: "character varying"}}, cols)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnsOf_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("information_schema").WillReturnError(errors.New("permission denied"))

	_, err = New(dbx.Postgres, db).ColumnsOf(context.Background(), "users")
	require.ErrorIs(t, err, common.ErrSchemaUnavailable)
	assert.ErrorContains(t, err, "permission denied")
}

func TestColumnsOf_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"column_name", "data_type"}).
		AddRow("id", "integer").
		RowError(0, errors.New("connection reset"))
	mock.ExpectQuery("information_schema").WillReturnRows(rows)

	_, err = New(dbx.Postgres, db).ColumnsOf(context.Background(), "users")
	require.ErrorIs(t, err, common.ErrSchemaUnavailable)
}

func TestColumnsOf_EmptyResultIsUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("information_schema").WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}))

	cols, err := New(dbx.Postgres, db).ColumnsOf(context.Background(), "users")
	require.ErrorIs(t, err, common.ErrSchemaUnavailable)
	assert.Nil(t, cols)
}
