// Package secrets decides how a credential is stored in each user table.
//
// Staff secrets are bcrypt-hashed. Operator secrets are stored verbatim:
// operators never sign in with a password, only with their badge, and the
// line terminals read the stored value back. Changing either side of this
// rule changes who can read what and must not happen silently.
package secrets

import (
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for hashed tables.
const Cost = 10

// Form is how a table keeps its secrets.
type Form int

const (
	Hashed Form = iota
	Plaintext
)

func (f Form) String() string {
	if f == Plaintext {
		return "plaintext"
	}
	return "hashed"
}

// Policy applies and checks the storage form of each table. The form
// depends only on the table, never on the caller.
type Policy struct {
	cost int
}

// NewPolicy returns the production policy.
func NewPolicy() *Policy {
	return &Policy{cost: Cost}
}

// FormOf returns the storage form for table.
func (p *Policy) FormOf(table models.Table) Form {
	if table == models.TableOperators {
		return Plaintext
	}
	return Hashed
}

// Apply turns raw into the form stored in table.
func (p *Policy) Apply(table models.Table, raw string) (string, error) {
	if p.FormOf(table) == Plaintext {
		return raw, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether raw matches the stored value of table.
func (p *Policy) Verify(table models.Table, stored, raw string) bool {
	if stored == "" {
		return false
	}
	if p.FormOf(table) == Plaintext {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(raw)) == 1
	}
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw))
	return err == nil
}

// Carry converts a stored secret of from into the stored form of to,
// when that is possible without the raw value. ok is false when the
// secret cannot follow the record, e.g. a hash moving to a plaintext
// table.
func (p *Policy) Carry(from, to models.Table, stored string) (value string, ok bool, err error) {
	if stored == "" {
		return "", false, nil
	}
	switch {
	case p.FormOf(from) == p.FormOf(to):
		return stored, true, nil
	case p.FormOf(from) == Plaintext:
		hashed, err := p.Apply(to, stored)
		if err != nil {
			return "", false, err
		}
		return hashed, true, nil
	}
	return "", false, nil
}
