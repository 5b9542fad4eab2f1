// Package sqlite - database migrations
package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/untoldecay/entitylink/internal/storage/sqlite/migrations"
)

// Migration represents a single database migration
type Migration struct {
	Name string
	Func func(*sql.DB) error
}

// migrationsList is run in order on every read-write open. Every entry must
// be idempotent.
var migrationsList = []Migration{
	{"alias_tokens_index", migrations.MigrateAliasTokensIndex},
	{"entity_views_index", migrations.MigrateEntityViewsIndex},
	{"pages_fetched_at_index", migrations.MigratePagesFetchedAtIndex},
}

// MigrationInfo contains metadata about a migration for inspection
type MigrationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListMigrations returns all registered migrations with descriptions.
func ListMigrations() []MigrationInfo {
	result := make([]MigrationInfo, len(migrationsList))
	for i, m := range migrationsList {
		result[i] = MigrationInfo{
			Name:        m.Name,
			Description: getMigrationDescription(m.Name),
		}
	}
	return result
}

func getMigrationDescription(name string) string {
	descriptions := map[string]string{
		"alias_tokens_index":     "Adds index on aliases.tokens for the longest-alias probe",
		"entity_views_index":     "Adds index on entities.views for candidate ranking",
		"pages_fetched_at_index": "Ensures pages.fetched_at exists and indexes it for cache pruning",
	}
	if desc, ok := descriptions[name]; ok {
		return desc
	}
	return "Unknown migration"
}

// RunMigrations executes all registered migrations in order and records the
// schema version in metadata.
// Uses an EXCLUSIVE transaction so two processes opening the same database
// do not race on check-then-modify steps.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec("BEGIN EXCLUSIVE"); err != nil {
		return fmt.Errorf("failed to acquire exclusive lock for migrations: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_, _ = db.Exec("ROLLBACK")
		}
	}()

	for _, migration := range migrationsList {
		if err := migration.Func(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO metadata (key, value) VALUES ('schema_version', ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, strconv.Itoa(len(migrationsList)))
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if _, err := db.Exec("COMMIT"); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}
	committed = true
	return nil
}
