// Package migrations embeds the goose SQL migrations defining the identity
// store schema. The adapter itself never issues DDL; the bootstrap applies
// these before serving.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
