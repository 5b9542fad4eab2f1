package migrations

import (
	"database/sql"
	"fmt"
)

func MigratePagesFetchedAtIndex(db *sql.DB) error {
	var n int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('pages')
		WHERE name = 'fetched_at'
	`).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect pages table: %w", err)
	}
	if n == 0 {
		if _, err := db.Exec(`ALTER TABLE pages ADD COLUMN fetched_at DATETIME`); err != nil {
			return fmt.Errorf("failed to add fetched_at column: %w", err)
		}
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at)`)
	if err != nil {
		return fmt.Errorf("failed to create pages fetched_at index: %w", err)
	}
	return nil
}
