// Package columns maps semantic column roles to the physical column names
// a table actually uses.
package columns

import (
	"strings"

	"github.com/dmitrijs2005/linekeeper/internal/server/catalog"
)

// Role is a semantic column role shared by every user table.
type Role string

const (
	Identifier     Role = "identifier"
	Email          Role = "email"
	Secret         Role = "secret"
	GivenName      Role = "given_name"
	FamilyName     Role = "family_name"
	PayrollNumber  Role = "payroll_number"
	BadgeCode      Role = "badge_code"
	Classification Role = "classification"
)

// Roles lists every role in a fixed order. SQL built from a column map
// follows this order.
var Roles = []Role{Identifier, Email, Secret, GivenName, FamilyName, PayrollNumber, BadgeCode, Classification}

// candidates holds every tolerated spelling of a role, best match first.
// Historical line databases mix English and Spanish column names.
var candidates = map[Role][]string{
	Identifier:     {"id", "user_id", "operator_id", "id_usuario", "id_operador"},
	Email:          {"email", "correo", "mail", "email_address"},
	Secret:         {"password", "password_hash", "contrasena", "clave", "pass"},
	GivenName:      {"first_name", "given_name", "nombre", "name"},
	FamilyName:     {"last_name", "family_name", "apellido", "apellidos", "surname"},
	PayrollNumber:  {"payroll_number", "nomina", "num_nomina", "numero_nomina", "employee_number"},
	BadgeCode:      {"badge_code", "badge", "codigo_tarjeta", "tarjeta", "rfid"},
	Classification: {"role", "rol", "classification", "tipo"},
}

// Candidates returns a copy of the accepted names for r.
func Candidates(r Role) []string {
	return append([]string(nil), candidates[r]...)
}

// Resolve returns the first candidate name of role present in cols.
// Matching is case-insensitive and exact. The physical spelling is
// returned, as introspected.
func Resolve(cols []catalog.Column, role Role) (catalog.Column, bool) {
	for _, name := range candidates[role] {
		for _, col := range cols {
			if strings.EqualFold(col.Name, name) {
				return col, true
			}
		}
	}
	return catalog.Column{}, false
}
