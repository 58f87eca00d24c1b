// Package migrations embeds the goose migrations for every supported
// dialect. Each dialect has its own directory named after dbx.Dialect.Name.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
