// Package storage defines the interfaces for the knowledge-base and dataset
// page cache backends.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDBNotInitialized is returned when a store is opened on a path that holds
// no database.
var ErrDBNotInitialized = errors.New("database not initialized")

// Entity is a knowledge-base item with the fields an annotation exposes.
type Entity struct {
	ItemID      int64    `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Views       int64    `json:"views"`
	Aliases     []string `json:"aliases,omitempty"`
}

// QID renders the item id in Wikidata form.
func (e Entity) QID() string {
	return "Q" + strconv.FormatInt(e.ItemID, 10)
}

// UnmarshalJSON accepts the id either as a number or as a "Q123" string.
func (e *Entity) UnmarshalJSON(data []byte) error {
	type plain Entity
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entity(raw.plain)
	id, err := ParseItemID(raw.ID)
	if err != nil {
		return err
	}
	e.ItemID = id
	return nil
}

// ParseItemID parses 42, "42" or "Q42".
func ParseItemID(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing item id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	return ParseQID(s)
}

// ParseQID parses an item id with or without the Q prefix.
func ParseQID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Q"), "q")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

// KnowledgeBase resolves normalized surface forms to candidate entities.
type KnowledgeBase interface {
	// Candidates returns every entity that has alias as one of its names,
	// most viewed first.
	Candidates(ctx context.Context, alias string) ([]Entity, error)

	// MaxAliasTokens is the token length of the longest alias stored.
	MaxAliasTokens(ctx context.Context) (int, error)

	Close() error
}

// PageKey identifies one page of rows fetched from a dataset source.
type PageKey struct {
	Dataset string
	Config  string
	Split   string
	Offset  int
	Length  int
}

// PageCache stores raw dataset pages so reruns do not refetch them.
type PageCache interface {
	GetPage(ctx context.Context, key PageKey) ([]byte, bool, error)
	PutPage(ctx context.Context, key PageKey, payload []byte) error
	Close() error
}
