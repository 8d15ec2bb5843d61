// Package migrations embeds the SQL schema for direct-Postgres deployments.
// Supabase projects apply the same files through the dashboard instead.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
