package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/untoldecay/entitylink/internal/annotator"
)

// stubAnnotator returns canned annotations and counts calls.
type stubAnnotator struct {
	anns  []annotator.Annotation
	err   error
	calls int
	texts []string
}

func (s *stubAnnotator) Name() string { return "stub" }

func (s *stubAnnotator) Annotate(ctx context.Context, text string) ([]annotator.Annotation, error) {
	s.calls++
	s.texts = append(s.texts, text)
	return s.anns, s.err
}

func TestPipeline(t *testing.T) {
	stub := &stubAnnotator{anns: []annotator.Annotation{
		annotator.Linked{Span: "Scott Derrickson", ItemID: 5148433, ItemName: "Scott Derrickson", Desc: "American film director"},
		annotator.Linked{Span: "Ed Wood", ItemID: 187923, ItemName: "Ed Wood", Desc: "American filmmaker"},
	}}
	pipeline := NewPipeline(stub)
	text := "Were Scott Derrickson and Ed Wood of the same nationality?"

	result, err := pipeline.Run(context.Background(), text)
	if err != nil {
		t.Fatalf("Pipeline.Run failed: %v", err)
	}
	if stub.calls != 1 || stub.texts[0] != text {
		t.Errorf("expected one call on the full text, got %d calls with %q", stub.calls, stub.texts)
	}
	if result.Extractor != "stub" {
		t.Errorf("Expected extractor 'stub', got %s", result.Extractor)
	}

	if len(result.Mentions) != 2 {
		t.Fatalf("Expected 2 mentions, got %d", len(result.Mentions))
	}
	first := result.Mentions[0]
	if first.Text != "Scott Derrickson" || first.ExternalID != "Q5148433" ||
		first.Label != "Scott Derrickson" || first.Description != "American film director" {
		t.Errorf("unexpected projection %+v", first)
	}
	if result.Mentions[1].ExternalID != "Q187923" {
		t.Errorf("Expected Q187923, got %s", result.Mentions[1].ExternalID)
	}
}

func TestExtractKeepsEverything(t *testing.T) {
	// Duplicates and same-id mentions pass through untouched.
	stub := &stubAnnotator{anns: []annotator.Annotation{
		annotator.Linked{Span: "Paris", ItemID: 90, ItemName: "Paris"},
		annotator.Linked{Span: "Paris", ItemID: 90, ItemName: "Paris"},
		annotator.Linked{Span: "paris", ItemID: 90, ItemName: "Paris"},
	}}
	mentions, err := Extract(context.Background(), stub, "Paris, Paris, paris")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(mentions) != 3 {
		t.Errorf("expected all 3 mentions kept, got %d", len(mentions))
	}
	if mentions[2].Text != "paris" {
		t.Errorf("expected span text verbatim, got %q", mentions[2].Text)
	}
}

func TestExtractNoMentions(t *testing.T) {
	mentions, err := Extract(context.Background(), &stubAnnotator{}, "nothing to see")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if mentions == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(mentions) != 0 {
		t.Errorf("expected no mentions, got %d", len(mentions))
	}
}

func TestExtractError(t *testing.T) {
	boom := errors.New("model crashed")
	_, err := Extract(context.Background(), &stubAnnotator{err: boom}, "text")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
