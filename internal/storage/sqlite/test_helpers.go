package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/untoldecay/entitylink/internal/storage"
)

// testEnv provides a test environment with common setup and helpers.
// Use newTestEnv(t) to create a test environment with automatic cleanup.
type testEnv struct {
	t     *testing.T
	Store *SQLiteStorage
	Ctx   context.Context
}

// newTestEnv creates a store in a temp dir, closed when the test completes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:     t,
		Store: newTestStore(t, filepath.Join(t.TempDir(), "kb.db")),
		Ctx:   context.Background(),
	}
}

func newTestStore(t *testing.T, dbPath string) *SQLiteStorage {
	t.Helper()
	store, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Import adds entities and fails the test on error.
func (e *testEnv) Import(entities ...storage.Entity) {
	e.t.Helper()
	if err := e.Store.ImportEntities(e.Ctx, entities); err != nil {
		e.t.Fatalf("ImportEntities failed: %v", err)
	}
}
