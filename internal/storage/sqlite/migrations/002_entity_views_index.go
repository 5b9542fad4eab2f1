package migrations

import (
	"database/sql"
	"fmt"
)

func MigrateEntityViewsIndex(db *sql.DB) error {
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_entities_views ON entities(views DESC, item_id)`)
	if err != nil {
		return fmt.Errorf("failed to create entities views index: %w", err)
	}
	return nil
}
