// Package migrations embeds the SQL schema applied by `storefront migrate`.
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS

const PostgresDir = "postgres"
