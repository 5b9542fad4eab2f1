package sqlite

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/untoldecay/entitylink/internal/nlp"
	"github.com/untoldecay/entitylink/internal/storage"
	"github.com/untoldecay/entitylink/internal/utils"
)

const importBatchSize = 1000

// Candidates implements storage.KnowledgeBase.
func (s *SQLiteStorage) Candidates(ctx context.Context, alias string) ([]storage.Entity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.item_id, e.label, e.description, e.views
		FROM aliases a
		JOIN entities e ON e.item_id = a.item_id
		WHERE a.alias = ?
		ORDER BY e.views DESC, e.item_id ASC
	`, nlp.Key(alias))
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []storage.Entity
	for rows.Next() {
		var e storage.Entity
		if err := rows.Scan(&e.ItemID, &e.Label, &e.Description, &e.Views); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SuggestAliases returns up to limit stored aliases within edit distance 2 of
// alias. Only aliases sharing the first character and with a similar token
// count are considered.
func (s *SQLiteStorage) SuggestAliases(ctx context.Context, alias string, limit int) ([]string, error) {
	key := nlp.Key(alias)
	if key == "" {
		return nil, nil
	}
	tokens := len(strings.Fields(key))
	first := string([]rune(key)[0])

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT alias FROM aliases
		WHERE substr(alias, 1, 1) = ? AND tokens BETWEEN ? AND ?
		ORDER BY alias
		LIMIT 5000
	`, first, tokens-1, tokens+1)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pool []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		if a != key {
			pool = append(pool, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return utils.Closest(key, pool, 2, limit), nil
}

// MaxAliasTokens implements storage.KnowledgeBase.
func (s *SQLiteStorage) MaxAliasTokens(ctx context.Context) (int, error) {
	var n sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(tokens) FROM aliases`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to read alias length: %w", err)
	}
	return int(n.Int64), nil
}

// CountEntities returns the number of items in the knowledge base.
func (s *SQLiteStorage) CountEntities(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	return n, nil
}

// ImportEntities upserts entities and their aliases in one transaction.
// The label is always stored as an alias.
func (s *SQLiteStorage) ImportEntities(ctx context.Context, entities []storage.Entity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entities (item_id, label, description, views) VALUES (?, ?, ?, ?)
		ON CONFLICT (item_id) DO UPDATE SET
			label = excluded.label,
			description = excluded.description,
			views = excluded.views
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entity insert: %w", err)
	}
	defer func() { _ = entStmt.Close() }()

	aliasStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO aliases (alias, item_id, tokens) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare alias insert: %w", err)
	}
	defer func() { _ = aliasStmt.Close() }()

	for _, e := range entities {
		if _, err := entStmt.ExecContext(ctx, e.ItemID, e.Label, e.Description, e.Views); err != nil {
			return fmt.Errorf("failed to insert %s: %w", e.QID(), err)
		}
		for _, name := range append([]string{e.Label}, e.Aliases...) {
			key := nlp.Key(name)
			if key == "" {
				continue
			}
			tokens := len(strings.Fields(key))
			if _, err := aliasStmt.ExecContext(ctx, key, e.ItemID, tokens); err != nil {
				return fmt.Errorf("failed to insert alias %q for %s: %w", key, e.QID(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// ImportJSONL reads one entity object per line and imports them in batches.
// Blank lines are skipped. Returns the number of entities imported.
func (s *SQLiteStorage) ImportJSONL(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	batch := make([]storage.Entity, 0, importBatchSize)
	total, lineNo := 0, 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.ImportEntities(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e storage.Entity
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return total, fmt.Errorf("line %d: %w", lineNo, err)
		}
		batch = append(batch, e)
		if len(batch) >= importBatchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return total, fmt.Errorf("failed to read import file: %w", err)
	}
	if err := flush(); err != nil {
		return total, err
	}

	count, err := s.CountEntities(ctx)
	if err == nil {
		_ = s.SetMetadata(ctx, "entity_count", strconv.Itoa(count))
	}
	return total, nil
}
