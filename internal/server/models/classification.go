package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/linekeeper/internal/common"
)

// Classification is the role of a person using the line terminals. It is
// the only field that decides which physical table holds the record.
type Classification string

const (
	Administrator Classification = "administrator"
	Quality       Classification = "quality"
	Operator      Classification = "operator"
)

// Classifications lists the whole enumerated domain.
var Classifications = []Classification{Administrator, Quality, Operator}

// storage and input spellings seen on existing line databases.
var classificationAliases = map[string]Classification{
	"administrator": Administrator,
	"admin":         Administrator,
	"administrador": Administrator,
	"quality":       Quality,
	"calidad":       Quality,
	"operator":      Operator,
	"operador":      Operator,
}

// ParseClassification accepts the canonical names and the known aliases,
// case-insensitively. Anything else is ErrInvalidClassification.
func ParseClassification(s string) (Classification, error) {
	if c, ok := classificationAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidClassification, s)
}

// Valid reports whether c is one of the enumerated values.
func (c Classification) Valid() bool {
	switch c {
	case Administrator, Quality, Operator:
		return true
	}
	return false
}

// StoredForm is the value written into a classification column.
func (c Classification) StoredForm() string {
	if c == Administrator {
		return "admin"
	}
	return string(c)
}

func (c Classification) String() string {
	return string(c)
}
