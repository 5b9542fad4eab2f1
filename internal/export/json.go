package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/untoldecay/entitylink/internal/types"
)

// Encode renders rows as a pretty printed JSON array. Non-ASCII and HTML
// characters are written as-is.
func Encode(rows []types.ResultRow, indent string) ([]byte, error) {
	if rows == nil {
		rows = []types.ResultRow{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(rows); err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the full rows to cfg.Path atomically: a temp file in the
// same directory is renamed over the target.
func WriteJSON(cfg Config, rows []types.ResultRow) error {
	data, err := Encode(rows, cfg.Indent)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(cfg.Path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	mode := os.FileMode(cfg.FileMode)
	if mode == 0 {
		mode = 0o644
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if err := os.Rename(tempPath, cfg.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", cfg.Path, err)
	}
	return nil
}
