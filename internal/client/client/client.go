package client

import "context"

// User is one record as rendered by the server. Keys that do not apply to
// the record kind are left empty.
type User struct {
	ID            string
	Table         string
	Kind          string
	Email         string
	GivenName     string
	FamilyName    string
	PayrollNumber string
	BadgeCode     string
}

// Ref locates a record after a create or an update.
type Ref struct {
	ID    string
	Table string
}

// Fields carries wire field keys, e.g. "email" or "classification", to
// their values. An empty value clears the field on update.
type Fields map[string]string

type Client interface {
	Close() error
	SetAccessToken(token string)
	Ping(ctx context.Context) error
	Login(ctx context.Context, email, secret string) (string, error)
	LoginBadge(ctx context.Context, badgeCode string) (string, error)
	ListUsers(ctx context.Context, limit int) ([]User, error)
	GetUser(ctx context.Context, id, table string) (User, error)
	CreateUser(ctx context.Context, fields Fields) (Ref, error)
	UpdateUser(ctx context.Context, id, table string, fields Fields) (Ref, error)
	DeleteUser(ctx context.Context, id, table string) error
}
