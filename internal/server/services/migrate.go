package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/linekeeper/internal/server/secrets"
)

// Migrator moves a record to another table. The insert into the
// destination and the delete from the source commit together or not at
// all, so the record is never in both tables or in neither.
type Migrator struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	policy *secrets.Policy
	log    logging.Logger
}

func NewMigrator(db *sql.DB, m repomanager.RepositoryManager, policy *secrets.Policy, log logging.Logger) *Migrator {
	return &Migrator{db: db, repos: m, policy: policy, log: log}
}

// Migrate moves src into table to, applying f on the way. Fields not in f
// keep their current values. The result is the record's new location.
//
// A missing source row is ErrorNotFound and an incomplete destination row
// is a ValidationError; both are detected before anything is written. Any
// other failure rolls back and is ErrMigrationAborted.
func (m *Migrator) Migrate(ctx context.Context, src models.Ref, to models.Table, f models.UserFields) (models.Ref, error) {
	if f.Classification == nil {
		return models.Ref{}, fmt.Errorf("%w: classification is required to change table", common.ErrValidation)
	}
	if routed, err := models.Route(*f.Classification); err != nil {
		return models.Ref{}, err
	} else if routed != to || to == src.Table {
		return models.Ref{}, fmt.Errorf("%w: %s does not move a record from %s to %s", common.ErrValidation, *f.Classification, src.Table, to)
	}

	// Maps are resolved first: the catalog read must not wait on the
	// transaction's connection.
	fromMap, err := m.repos.Map(ctx, src.Table)
	if err != nil {
		return models.Ref{}, err
	}
	toMap, err := m.repos.Map(ctx, to)
	if err != nil {
		return models.Ref{}, err
	}

	var (
		newID    string
		inserted bool
	)
	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		source := m.repos.Users(fromMap, tx)
		dest := m.repos.Users(toMap, tx)

		cur, err := source.GetForUpdate(ctx, src.ID)
		if err != nil {
			return err
		}
		out, err := m.outgoing(src.Table, to, toMap, cur, f)
		if err != nil {
			return err
		}

		newID, err = dest.Insert(ctx, out)
		if err != nil {
			return fmt.Errorf("insert into %s: %w", toMap.Table(), err)
		}
		inserted = true

		if _, err := source.Delete(ctx, src.ID); err != nil {
			return fmt.Errorf("delete from %s: %w", fromMap.Table(), err)
		}
		return nil
	})
	if err != nil {
		if !inserted && (errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrValidation)) {
			return models.Ref{}, err
		}
		m.log.Warn(ctx, "user migration rolled back", "from", src.Table, "to", to, "old_id", src.ID, "error", err)
		return models.Ref{}, fmt.Errorf("%w: %s %s to %s: %w", common.ErrMigrationAborted, src.Table, src.ID, to, err)
	}

	m.log.Info(ctx, "user migrated", "from", src.Table, "to", to, "old_id", src.ID, "new_id", newID)
	return models.Ref{ID: newID, Table: to}, nil
}

// outgoing builds the destination row: the current values overlaid with
// f, the secret in the destination's form and the new classification.
func (m *Migrator) outgoing(from, to models.Table, toMap columns.ColumnMap, cur users.Values, f models.UserFields) (users.Values, error) {
	out := users.Values{}
	for r, v := range cur {
		switch r {
		case columns.Identifier, columns.Secret, columns.Classification:
			continue
		}
		out[r] = v
	}
	for r, v := range fieldValues(f) {
		out[r] = v
	}

	switch {
	case f.HasSecret():
		stored, err := m.policy.Apply(to, *f.Secret)
		if err != nil {
			return nil, err
		}
		out[columns.Secret] = stored
	case cur[columns.Secret] != "":
		stored, ok, err := m.policy.Carry(from, to, cur[columns.Secret])
		if err != nil {
			return nil, err
		}
		if ok {
			out[columns.Secret] = stored
		}
	}

	if err := checkRequired(to, toMap, out, true); err != nil {
		return nil, err
	}
	setClassification(toMap, out, *f.Classification)
	return out, nil
}
