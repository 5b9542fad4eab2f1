package migrations

import (
	"database/sql"
	"fmt"
)

// MigrateAliasTokensIndex indexes alias token counts so the longest-alias
// probe done before every annotation is an index seek.
func MigrateAliasTokensIndex(db *sql.DB) error {
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_aliases_tokens ON aliases(tokens)`)
	if err != nil {
		return fmt.Errorf("failed to create aliases tokens index: %w", err)
	}
	return nil
}
