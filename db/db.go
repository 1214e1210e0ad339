// Package db embeds the SQL schema for the Postgres backend.
package db

import _ "embed"

// InitSQL creates the catalog tables and indexes. It is safe to re-run.
//
//go:embed migrations/0001_init.sql
var InitSQL string
