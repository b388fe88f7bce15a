// Package db ships the Postgres schema migrations inside the binary.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
