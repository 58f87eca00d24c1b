// Package common defines shared constants and sentinel errors used across
// the server and the admin client. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrSchemaUnavailable   = errors.New("schema unavailable")
	ErrNoInsertableColumns = errors.New("no insertable columns")
	ErrAlreadyExists       = errors.New("already exists")

	// Service-level errors.
	ErrorInternal            = errors.New("internal error")
	ErrorUnauthorized        = errors.New("unauthorized")
	ErrInvalidClassification = errors.New("invalid classification")
	ErrValidation            = errors.New("validation error")
	ErrMigrationAborted      = errors.New("migration aborted")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// ValidationError reports the fields a write was missing for the table
// it resolved to. It matches ErrValidation.
type ValidationError struct {
	Table   string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: table %s requires %s", e.Table, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
