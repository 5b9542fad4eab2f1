// Package memory implements the storage interfaces in process. It backs
// tests and small hand-built knowledge bases.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/untoldecay/entitylink/internal/nlp"
	"github.com/untoldecay/entitylink/internal/storage"
)

// MemoryStorage holds entities keyed by normalized alias and raw dataset pages.
type MemoryStorage struct {
	mu       sync.RWMutex
	entities map[int64]storage.Entity
	aliases  map[string][]int64
	maxToks  int
	pages    map[storage.PageKey][]byte
}

var (
	_ storage.KnowledgeBase = (*MemoryStorage)(nil)
	_ storage.PageCache     = (*MemoryStorage)(nil)
)

// New creates an empty store.
func New() *MemoryStorage {
	return &MemoryStorage{
		entities: make(map[int64]storage.Entity),
		aliases:  make(map[string][]int64),
		pages:    make(map[storage.PageKey][]byte),
	}
}

// AddEntity registers e under its label and every alias.
func (m *MemoryStorage) AddEntity(e storage.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entities[e.ItemID] = e
	names := append([]string{e.Label}, e.Aliases...)
	for _, name := range names {
		key := nlp.Key(name)
		if key == "" || containsID(m.aliases[key], e.ItemID) {
			continue
		}
		m.aliases[key] = append(m.aliases[key], e.ItemID)
		if n := len(strings.Fields(key)); n > m.maxToks {
			m.maxToks = n
		}
	}
}

func containsID(ids []int64, id int64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Candidates implements storage.KnowledgeBase.
func (m *MemoryStorage) Candidates(ctx context.Context, alias string) ([]storage.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.aliases[nlp.Key(alias)]
	out := make([]storage.Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.entities[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

// MaxAliasTokens implements storage.KnowledgeBase.
func (m *MemoryStorage) MaxAliasTokens(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxToks, nil
}

// GetPage implements storage.PageCache.
func (m *MemoryStorage) GetPage(ctx context.Context, key storage.PageKey) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[key]
	return p, ok, nil
}

// PutPage implements storage.PageCache.
func (m *MemoryStorage) PutPage(ctx context.Context, key storage.PageKey, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[key] = append([]byte(nil), payload...)
	return nil
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}
