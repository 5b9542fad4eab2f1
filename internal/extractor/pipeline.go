// Package extractor turns annotator output into entity mentions.
package extractor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/untoldecay/entitylink/internal/annotator"
	"github.com/untoldecay/entitylink/internal/types"
)

// Extract annotates text once and projects every annotation into an
// EntityMention, in annotator order. Nothing is filtered, ranked or merged.
// The result is never nil.
func Extract(ctx context.Context, a annotator.Annotator, text string) ([]types.EntityMention, error) {
	anns, err := a.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotate with %s: %w", a.Name(), err)
	}

	mentions := make([]types.EntityMention, 0, len(anns))
	for _, ann := range anns {
		mentions = append(mentions, Mention(ann))
	}
	return mentions, nil
}

// Mention is the fixed mapping from an annotation to the pipeline's shape.
func Mention(ann annotator.Annotation) types.EntityMention {
	return types.EntityMention{
		Text:        ann.SpanText(),
		ExternalID:  "Q" + strconv.FormatInt(ann.ID(), 10),
		Label:       ann.Label(),
		Description: ann.Description(),
	}
}

// Pipeline binds an annotator for repeated extraction.
type Pipeline struct {
	annotator annotator.Annotator
}

// NewPipeline creates a pipeline over a constructed annotator.
func NewPipeline(a annotator.Annotator) *Pipeline {
	return &Pipeline{annotator: a}
}

// Run extracts mentions from text and times the call.
func (p *Pipeline) Run(ctx context.Context, text string) (*ExtractionResult, error) {
	start := time.Now()
	mentions, err := Extract(ctx, p.annotator, text)
	if err != nil {
		return nil, err
	}
	return &ExtractionResult{
		Mentions:  mentions,
		Duration:  time.Since(start),
		Extractor: p.annotator.Name(),
	}, nil
}
