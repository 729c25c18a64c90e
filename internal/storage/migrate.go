package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// MigrateUp applies every up migration, oldest first.
func MigrateUp(db *sql.DB) error {
	return applyMigrations(db, upSuffix)
}

// MigrateDown unwinds the schema, newest migration first, so
// completion_logs is dropped before the goals table it references.
func MigrateDown(db *sql.DB) error {
	return applyMigrations(db, downSuffix)
}

func applyMigrations(db *sql.DB, suffix string) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	for _, name := range orderMigrations(entries, suffix) {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}

// orderMigrations sorts up migrations ascending and down migrations
// descending: the schema is torn down in the opposite order it was
// built.
func orderMigrations(names []string, suffix string) []string {
	sort.Strings(names)
	if suffix == downSuffix {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	return names
}
