// Package users gives generic read/write access to one physical user
// table through its resolved column map.
package users

import (
	"context"

	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
)

// Values is one row keyed by semantic role. Empty strings stand for NULL.
type Values map[columns.Role]string

// Repository is the record accessor of one physical table.
type Repository interface {
	Get(ctx context.Context, id string) (Values, error)
	GetForUpdate(ctx context.Context, id string) (Values, error)
	FindBy(ctx context.Context, role columns.Role, value string) (Values, error)
	List(ctx context.Context, limit int) ([]Values, error)
	Insert(ctx context.Context, v Values) (string, error)
	Update(ctx context.Context, id string, v Values) error
	Delete(ctx context.Context, id string) (int64, error)
}
