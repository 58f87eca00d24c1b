package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/dmitrijs2005/linekeeper/internal/server/config"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linekeeper/internal/server/secrets"
)

// UserService is the administrator-only surface over both user tables.
type UserService struct {
	store
	policy    *secrets.Policy
	migrator  *Migrator
	listLimit int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	st := store{db: db, repos: m, log: log, timeout: cfg.OperationTimeout}
	policy := secrets.NewPolicy()
	return &UserService{
		store:     st,
		policy:    policy,
		migrator:  NewMigrator(db, m, policy, log),
		listLimit: cfg.ListLimit,
	}
}

// ListUsers returns the records of both tables, staff first, each table
// in key order. limit caps the rows read per table and never exceeds the
// configured cap; <= 0 means the configured cap. Rows with a
// classification outside the enum are skipped.
func (s *UserService) ListUsers(ctx context.Context, caller models.Caller, limit int) ([]models.User, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	var out []models.User
	for _, t := range models.Tables {
		m, repo, err := s.accessor(ctx, t)
		if err != nil {
			s.logFailure(ctx, "list users", err)
			return nil, err
		}
		rows, err := repo.List(ctx, s.effectiveLimit(limit))
		if err != nil {
			s.logFailure(ctx, "list users", err)
			return nil, err
		}
		for _, row := range rows {
			u, err := toUser(t, m, row)
			if err != nil {
				s.log.Warn(ctx, "skipping unreadable row", "table", m.Table(), "id", row[m.KeyRole()], "error", err)
				continue
			}
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) effectiveLimit(limit int) int {
	if limit <= 0 || (s.listLimit > 0 && limit > s.listLimit) {
		return s.listLimit
	}
	return limit
}

// GetUser reads one record. known may be empty.
func (s *UserService) GetUser(ctx context.Context, caller models.Caller, id string, known models.Table) (models.User, error) {
	if err := authorize(caller); err != nil {
		return models.User{}, err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	loc, err := s.locate(ctx, id, known)
	if err != nil {
		s.logFailure(ctx, "get user", err)
		return models.User{}, err
	}
	return toUser(loc.table, loc.m, loc.row)
}

// CreateUser inserts a record into the table its classification routes to.
func (s *UserService) CreateUser(ctx context.Context, caller models.Caller, f models.UserFields) (models.Ref, error) {
	if err := authorize(caller); err != nil {
		return models.Ref{}, err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	ref, err := s.create(ctx, f)
	if err != nil {
		s.logFailure(ctx, "create user", err)
		return models.Ref{}, err
	}
	s.log.Info(ctx, "user created", "table", ref.Table, "id", ref.ID)
	return ref, nil
}

func (s *UserService) create(ctx context.Context, f models.UserFields) (models.Ref, error) {
	if f.Classification == nil {
		return models.Ref{}, fmt.Errorf("%w: classification is required", common.ErrValidation)
	}
	t, err := models.Route(*f.Classification)
	if err != nil {
		return models.Ref{}, err
	}
	m, repo, err := s.accessor(ctx, t)
	if err != nil {
		return models.Ref{}, err
	}

	v := fieldValues(f)
	if f.HasSecret() {
		v[columns.Secret] = *f.Secret
	}
	if err := checkRequired(t, m, v, true); err != nil {
		return models.Ref{}, err
	}
	if f.HasSecret() {
		stored, err := s.policy.Apply(t, *f.Secret)
		if err != nil {
			return models.Ref{}, err
		}
		v[columns.Secret] = stored
	}
	setClassification(m, v, *f.Classification)

	id, err := repo.Insert(ctx, v)
	if err != nil {
		return models.Ref{}, err
	}
	return models.Ref{ID: id, Table: t}, nil
}

// UpdateUser applies f to the record. When the new classification routes
// to the other table the record is migrated and the returned ref names
// its new location.
func (s *UserService) UpdateUser(ctx context.Context, caller models.Caller, id string, known models.Table, f models.UserFields) (models.Ref, error) {
	if err := authorize(caller); err != nil {
		return models.Ref{}, err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	ref, err := s.update(ctx, id, known, f)
	if err != nil {
		s.logFailure(ctx, "update user", err)
		return models.Ref{}, err
	}
	return ref, nil
}

func (s *UserService) update(ctx context.Context, id string, known models.Table, f models.UserFields) (models.Ref, error) {
	loc, err := s.locate(ctx, id, known)
	if err != nil {
		return models.Ref{}, err
	}

	dest := loc.table
	if f.Classification != nil {
		if dest, err = models.Route(*f.Classification); err != nil {
			return models.Ref{}, err
		}
	}
	if dest != loc.table {
		return s.migrator.Migrate(ctx, models.Ref{ID: id, Table: loc.table}, dest, f)
	}

	v := fieldValues(f)
	if err := checkRequired(loc.table, loc.m, v, false); err != nil {
		return models.Ref{}, err
	}
	if f.HasSecret() {
		stored, err := s.policy.Apply(loc.table, *f.Secret)
		if err != nil {
			return models.Ref{}, err
		}
		v[columns.Secret] = stored
	}
	if f.Classification != nil {
		setClassification(loc.m, v, *f.Classification)
	}

	if err := s.repos.Users(loc.m, s.db).Update(ctx, id, v); err != nil {
		return models.Ref{}, err
	}
	s.log.Info(ctx, "user updated", "table", loc.table, "id", id)
	return models.Ref{ID: id, Table: loc.table}, nil
}

// DeleteUser removes the record from whichever table holds it.
func (s *UserService) DeleteUser(ctx context.Context, caller models.Caller, id string, known models.Table) error {
	if err := authorize(caller); err != nil {
		return err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	loc, err := s.locate(ctx, id, known)
	if err != nil {
		s.logFailure(ctx, "delete user", err)
		return err
	}
	if _, err := s.repos.Users(loc.m, s.db).Delete(ctx, id); err != nil {
		s.logFailure(ctx, "delete user", err)
		return err
	}
	s.log.Info(ctx, "user deleted", "table", loc.table, "id", id)
	return nil
}

// Bootstrap creates an administrator with email unless one with that
// email already exists. It reports whether a record was created.
func (s *UserService) Bootstrap(ctx context.Context, email, secret string) (bool, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	_, repo, err := s.accessor(ctx, models.TableStaff)
	if err != nil {
		return false, err
	}
	_, err = repo.FindBy(ctx, columns.Email, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}

	admin := models.Administrator
	ref, err := s.create(ctx, models.UserFields{
		Email:          &email,
		Secret:         &secret,
		Classification: &admin,
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap administrator: %w", err)
	}
	s.log.Info(ctx, "bootstrap administrator created", "id", ref.ID)
	return true, nil
}
