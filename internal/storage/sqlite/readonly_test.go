package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/untoldecay/entitylink/internal/storage"
)

// TestReadOnlyDoesNotModifyFile verifies that annotating against a read-only
// knowledge base leaves the database file untouched.
func TestReadOnlyDoesNotModifyFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kb.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	err = store.ImportEntities(ctx, []storage.Entity{
		{ItemID: 187923, Label: "Ed Wood", Description: "American filmmaker", Views: 1200},
	})
	if err != nil {
		_ = store.Close()
		t.Fatalf("ImportEntities failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close storage: %v", err)
	}

	before, err := os.Stat(dbPath)
	if err != nil {
		t.Fatalf("failed to stat db: %v", err)
	}
	// mtime resolution on some filesystems is coarse
	time.Sleep(50 * time.Millisecond)

	ro, err := NewReadOnly(ctx, dbPath)
	if err != nil {
		t.Fatalf("NewReadOnly failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := ro.Candidates(ctx, "ed wood"); err != nil {
			t.Fatalf("Candidates failed: %v", err)
		}
		if _, err := ro.MaxAliasTokens(ctx); err != nil {
			t.Fatalf("MaxAliasTokens failed: %v", err)
		}
	}
	if _, _, err := ro.GetPage(ctx, storage.PageKey{Dataset: "hotpotqa/hotpot_qa"}); err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if err := ro.Close(); err != nil {
		t.Fatalf("failed to close read-only storage: %v", err)
	}

	after, err := os.Stat(dbPath)
	if err != nil {
		t.Fatalf("failed to stat db: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Errorf("database modified by read-only use: mtime %v -> %v", before.ModTime(), after.ModTime())
	}
	if after.Size() != before.Size() {
		t.Errorf("database size changed by read-only use: %d -> %d", before.Size(), after.Size())
	}
}

func TestNewReadOnlyRejectsForeignDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "other.db")
	store := newTestStore(t, dbPath)
	if _, err := store.UnderlyingDB().Exec(`DROP TABLE aliases`); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	if _, err := NewReadOnly(context.Background(), dbPath); err == nil {
		t.Fatal("expected an error for a database without knowledge-base tables")
	}
}
