package annotator

import (
	"context"
	"errors"
	"fmt"

	"github.com/untoldecay/entitylink/internal/nlp"
	"github.com/untoldecay/entitylink/internal/storage"
	"github.com/untoldecay/entitylink/internal/storage/sqlite"
)

// DefaultMaxNGram bounds mention length in tokens when no KB limit applies.
const DefaultMaxNGram = 4

// KBLinker links mentions by exact alias lookup against a local knowledge
// base. Spans are chosen greedily: at each position the longest n-gram with
// at least one candidate wins and the scan resumes after it, so mentions
// never overlap. Among candidates for a span the most viewed item is taken.
type KBLinker struct {
	kb       storage.KnowledgeBase
	maxNGram int
	owned    bool
}

// NewKBLinker wraps an open knowledge base. The caller keeps ownership of kb.
func NewKBLinker(kb storage.KnowledgeBase, maxNGram int) *KBLinker {
	if maxNGram <= 0 {
		maxNGram = DefaultMaxNGram
	}
	return &KBLinker{kb: kb, maxNGram: maxNGram}
}

// OpenKB opens the sqlite knowledge base at path read-only.
// A missing or empty database yields ErrModelNotFound.
func OpenKB(ctx context.Context, path string, maxNGram int) (*KBLinker, error) {
	store, err := sqlite.NewReadOnly(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrDBNotInitialized) {
			return nil, fmt.Errorf("%w: %v", ErrModelNotFound, err)
		}
		return nil, err
	}
	l := NewKBLinker(store, maxNGram)
	l.owned = true
	return l, nil
}

// Name implements Annotator.
func (l *KBLinker) Name() string {
	return "kb"
}

// Close closes the knowledge base if OpenKB opened it.
func (l *KBLinker) Close() error {
	if l.owned {
		return l.kb.Close()
	}
	return nil
}

// Annotate implements Annotator.
func (l *KBLinker) Annotate(ctx context.Context, text string) ([]Annotation, error) {
	tokens := nlp.TokenizePos(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	limit := l.maxNGram
	if longest, err := l.kb.MaxAliasTokens(ctx); err != nil {
		return nil, err
	} else if longest < limit {
		limit = longest
	}
	if limit == 0 {
		return nil, nil
	}

	var out []Annotation
	for i := 0; i < len(tokens); {
		advance := 1
		for n := min(limit, len(tokens)-i); n >= 1; n-- {
			run := tokens[i : i+n]
			if n == 1 && nlp.IsStopword(run[0].Text) {
				continue
			}
			cands, err := l.kb.Candidates(ctx, nlp.JoinTokens(run))
			if err != nil {
				return nil, fmt.Errorf("candidate lookup failed: %w", err)
			}
			if len(cands) == 0 {
				continue
			}
			best := cands[0]
			start, end := run[0].Start, run[n-1].End
			out = append(out, Linked{
				Span:     text[start:end],
				ItemID:   best.ItemID,
				ItemName: best.Label,
				Desc:     best.Description,
				Start:    start,
				End:      end,
			})
			advance = n
			break
		}
		i += advance
	}
	return out, nil
}
