// Package models holds the logical user record shared by every layer, the
// classification enum and the table routing rules.
package models

// User is the role-agnostic view of a person. The secret is write-only
// and never part of this struct.
type User struct {
	ID             string
	Email          string
	GivenName      string
	FamilyName     string
	PayrollNumber  string
	BadgeCode      string
	Classification Classification
	ResidesIn      Table
}

// Ref locates a record. Ids are unique only within one table.
type Ref struct {
	ID    string
	Table Table
}

// UserFields is a partial write. A nil field was not supplied.
type UserFields struct {
	Email          *string
	Secret         *string
	GivenName      *string
	FamilyName     *string
	PayrollNumber  *string
	BadgeCode      *string
	Classification *Classification
}

// HasSecret reports whether a non-empty secret was supplied. An empty
// secret on update means "leave unchanged".
func (f UserFields) HasSecret() bool {
	return f.Secret != nil && *f.Secret != ""
}

// Caller is the already authenticated principal a request runs as.
type Caller struct {
	Subject        string
	Classification Classification
}

// IsAdministrator reports whether the caller may manage user records.
func (c Caller) IsAdministrator() bool {
	return c.Classification == Administrator
}

// StringPtr is a small helper for building UserFields.
func StringPtr(s string) *string {
	return &s
}
