package models

import (
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/common"
)

// Table names one of the two logical tables a user record can live in.
// The physical table names come from configuration.
type Table string

const (
	// TableStaff holds administrators and quality staff. Secrets are hashed.
	TableStaff Table = "staff"
	// TableOperators holds line operators. Secrets are stored verbatim and
	// operators sign in with their badge.
	TableOperators Table = "operators"
)

// Tables lists the logical tables in lookup order.
var Tables = []Table{TableStaff, TableOperators}

// ParseTable resolves a logical table name.
func ParseTable(s string) (Table, error) {
	switch Table(s) {
	case TableStaff, TableOperators:
		return Table(s), nil
	}
	return "", fmt.Errorf("%w: unknown table %q", common.ErrValidation, s)
}

// Route decides which table a record with the given classification
// belongs in. It is total over the enumerated domain.
func Route(c Classification) (Table, error) {
	switch c {
	case Administrator, Quality:
		return TableStaff, nil
	case Operator:
		return TableOperators, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidClassification, string(c))
}

// Hosts returns the classifications that may live in t.
func (t Table) Hosts() []Classification {
	switch t {
	case TableStaff:
		return []Classification{Administrator, Quality}
	case TableOperators:
		return []Classification{Operator}
	}
	return nil
}

// ImpliedClassification is the classification every row of t has when
// the table carries no classification column. Only single-classification
// tables declare one.
func (t Table) ImpliedClassification() (Classification, bool) {
	if t == TableOperators {
		return Operator, true
	}
	return "", false
}

func (t Table) String() string {
	return string(t)
}
