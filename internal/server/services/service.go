// Package services implements the user record operations: routing to a
// table, validation, the secret policy, and moving records between tables
// when their classification changes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/users"
)

// store bundles what every service needs to reach a table.
type store struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	log     logging.Logger
	timeout time.Duration
}

// bounded applies the per-operation timeout.
func (s *store) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *store) accessor(ctx context.Context, t models.Table) (columns.ColumnMap, users.Repository, error) {
	m, err := s.repos.Map(ctx, t)
	if err != nil {
		return columns.ColumnMap{}, nil, err
	}
	return m, s.repos.Users(m, s.db), nil
}

// located is a row found by id together with where it was found.
type located struct {
	table models.Table
	m     columns.ColumnMap
	row   users.Values
}

// locate finds id in known, or in every table when known is empty. Ids
// are unique only per table, so an id present in both tables must be
// disambiguated by the caller.
func (s *store) locate(ctx context.Context, id string, known models.Table) (located, error) {
	tables := models.Tables
	if known != "" {
		tables = []models.Table{known}
	}

	var hits []located
	for _, t := range tables {
		m, repo, err := s.accessor(ctx, t)
		if err != nil {
			return located{}, err
		}
		row, err := repo.Get(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			continue
		}
		if err != nil {
			return located{}, err
		}
		hits = append(hits, located{table: t, m: m, row: row})
	}

	switch len(hits) {
	case 0:
		return located{}, common.ErrorNotFound
	case 1:
		return hits[0], nil
	}
	return located{}, fmt.Errorf("%w: id %s exists in more than one table, name the table", common.ErrValidation, id)
}

func authorize(c models.Caller) error {
	if !c.IsAdministrator() {
		return common.ErrorUnauthorized
	}
	return nil
}

// logFailure logs unexpected errors; expected outcomes stay quiet.
func (s *store) logFailure(ctx context.Context, op string, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidClassification),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrAlreadyExists):
		s.log.Debug(ctx, op+" rejected", "error", err)
	default:
		s.log.Error(ctx, op+" failed", "error", err)
	}
}
