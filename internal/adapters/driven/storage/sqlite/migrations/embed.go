// Package migrations holds the SQL that builds the report history schema.
package migrations

import "embed"

// FS holds the numbered migrations. Only *.up.sql files are applied, in name order.
//
//go:embed *.sql
var FS embed.FS
