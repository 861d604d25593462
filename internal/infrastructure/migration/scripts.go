package migration

import (
	"embed"
	"io/fs"
)

//go:embed scripts/goose/*.sql scripts/migrate/*.sql
var scripts embed.FS

const (
	gooseDir   = "scripts/goose"
	migrateDir = "scripts/migrate"
)

// Scripts exposes the embedded migration sources, mainly for tests.
func Scripts() fs.FS {
	return scripts
}
