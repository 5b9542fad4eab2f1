package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/untoldecay/entitylink/internal/storage"
)

// GetPage implements storage.PageCache.
func (s *SQLiteStorage) GetPage(ctx context.Context, key storage.PageKey) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM pages
		WHERE dataset = ? AND config = ? AND split = ? AND page_offset = ? AND page_length = ?
	`, key.Dataset, key.Config, key.Split, key.Offset, key.Length).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached page: %w", err)
	}
	return payload, true, nil
}

// PutPage implements storage.PageCache.
func (s *SQLiteStorage) PutPage(ctx context.Context, key storage.PageKey, payload []byte) error {
	if s.readOnly {
		return fmt.Errorf("page cache %s is read-only", s.dbPath)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (dataset, config, split, page_offset, page_length, payload) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (dataset, config, split, page_offset, page_length) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = CURRENT_TIMESTAMP
	`, key.Dataset, key.Config, key.Split, key.Offset, key.Length, payload)
	if err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}
