package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	"github.com/dmitrijs2005/linekeeper/internal/server/config"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var (
	admin    = models.Caller{Subject: "staff:1", Classification: models.Administrator}
	quality  = models.Caller{Subject: "staff:2", Classification: models.Quality}
	operator = models.Caller{Subject: "operators:1", Classification: models.Operator}
)

type fixture struct {
	db    *sql.DB
	reg   *repomanager.Registry
	cfg   *config.Config
	users *UserService
	auth  *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.SQLite, filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reg := repomanager.NewRegistry(dbx.SQLite, db, repomanager.DefaultNames)
	require.NoError(t, reg.RunMigrations(ctx, db))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"

	return &fixture{
		db:    db,
		reg:   reg,
		cfg:   cfg,
		users: NewUserService(db, reg, cfg, logging.Nop()),
		auth:  NewAuthService(db, reg, cfg, logging.Nop()),
	}
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func (f *fixture) total(t *testing.T) int {
	return f.count(t, "users") + f.count(t, "operators")
}

func (f *fixture) column(t *testing.T, query string, args ...any) sql.NullString {
	t.Helper()
	var v sql.NullString
	require.NoError(t, f.db.QueryRow(query, args...).Scan(&v))
	return v
}

func classification(c models.Classification) *models.Classification {
	return &c
}

func (f *fixture) createAdmin(t *testing.T, email, secret string) models.Ref {
	t.Helper()
	ref, err := f.users.CreateUser(context.Background(), admin, models.UserFields{
		Email:          models.StringPtr(email),
		Secret:         models.StringPtr(secret),
		Classification: classification(models.Administrator),
	})
	require.NoError(t, err)
	return ref
}

func (f *fixture) createOperator(t *testing.T, badge, secret string) models.Ref {
	t.Helper()
	fields := models.UserFields{
		BadgeCode:      models.StringPtr(badge),
		GivenName:      models.StringPtr("Op"),
		Classification: classification(models.Operator),
	}
	if secret != "" {
		fields.Secret = models.StringPtr(secret)
	}
	ref, err := f.users.CreateUser(context.Background(), admin, fields)
	require.NoError(t, err)
	return ref
}
