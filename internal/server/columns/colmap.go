package columns

import (
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/server/catalog"
)

// keyRoles is the order in which a role is chosen to address rows.
var keyRoles = []Role{Identifier, PayrollNumber, BadgeCode}

// ColumnMap is the resolved role → column mapping of one physical table.
// It is immutable once built.
type ColumnMap struct {
	table   string
	columns map[Role]catalog.Column
	key     Role
}

// Build resolves every role against cols. A table without any usable key
// role fails with ErrSchemaUnavailable.
func Build(table string, cols []catalog.Column) (ColumnMap, error) {
	m := ColumnMap{table: table, columns: make(map[Role]catalog.Column, len(Roles))}
	for _, r := range Roles {
		if col, ok := Resolve(cols, r); ok {
			m.columns[r] = col
		}
	}

	for _, r := range keyRoles {
		if _, ok := m.columns[r]; ok {
			m.key = r
			return m, nil
		}
	}
	return ColumnMap{}, fmt.Errorf("%w: table %s has no identifier, payroll or badge column", common.ErrSchemaUnavailable, table)
}

// Table is the physical table name the map was built for.
func (m ColumnMap) Table() string {
	return m.table
}

// Column returns the physical column for r.
func (m ColumnMap) Column(r Role) (catalog.Column, bool) {
	col, ok := m.columns[r]
	return col, ok
}

// Has reports whether the table supports r.
func (m ColumnMap) Has(r Role) bool {
	_, ok := m.columns[r]
	return ok
}

// KeyRole is the role rows are addressed and ordered by: the identifier,
// or payroll number, or badge code, whichever the table has first.
func (m ColumnMap) KeyRole() Role {
	return m.key
}

// KeyColumn is the physical column of KeyRole.
func (m ColumnMap) KeyColumn() catalog.Column {
	return m.columns[m.key]
}

// Resolved lists the supported roles in canonical order.
func (m ColumnMap) Resolved() []Role {
	out := make([]Role, 0, len(m.columns))
	for _, r := range Roles {
		if _, ok := m.columns[r]; ok {
			out = append(out, r)
		}
	}
	return out
}
