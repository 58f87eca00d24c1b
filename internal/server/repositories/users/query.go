package users

import (
	"strings"

	"github.com/dmitrijs2005/linekeeper/internal/dbx"
)

// stmt accumulates statement text and bind arguments. Only introspected
// column names are ever written into the text.
type stmt struct {
	d    dbx.Dialect
	sb   strings.Builder
	args []any
}

func newStmt(d dbx.Dialect) *stmt {
	return &stmt{d: d}
}

func (s *stmt) raw(text string) *stmt {
	s.sb.WriteString(text)
	return s
}

func (s *stmt) ident(name string) *stmt {
	s.sb.WriteString(s.d.QuoteIdent(name))
	return s
}

func (s *stmt) idents(names []string) *stmt {
	for i, n := range names {
		if i > 0 {
			s.sb.WriteString(", ")
		}
		s.ident(n)
	}
	return s
}

// bind appends a placeholder for v.
func (s *stmt) bind(v any) *stmt {
	s.args = append(s.args, v)
	s.sb.WriteString(s.d.Placeholder(len(s.args)))
	return s
}

func (s *stmt) String() string {
	return s.sb.String()
}
