// Package annotator defines the entity-linking capability the pipeline
// consumes and the backends that provide it.
//
// An Annotator finds entity mentions in a text and links each one to a
// knowledge-base item. The pipeline only relies on the four accessors of
// Annotation; any backend must supply all of them.
package annotator

import (
	"context"
	"errors"
)

var (
	// ErrModelNotFound is returned when a local model artifact is missing.
	ErrModelNotFound = errors.New("annotator model not found")

	// ErrAPIKeyRequired is returned when a hosted backend has no credentials.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrUnavailable is returned when a backend service cannot be reached.
	ErrUnavailable = errors.New("annotator service not available")

	// ErrUnknownBackend is returned for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown annotator backend")
)

// Annotation is one linked entity mention.
type Annotation interface {
	// SpanText is the mention as it appears in the input.
	SpanText() string
	// ID is the numeric knowledge-base id (Wikidata Q number without the Q).
	ID() int64
	Label() string
	Description() string
}

// Annotator links entity mentions in text.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Annotation, error)
	Name() string
}

// Linked is the plain Annotation value backends return.
type Linked struct {
	Span     string
	ItemID   int64
	ItemName string
	Desc     string

	// Byte range of Span in the annotated text, -1 when the backend does
	// not report positions.
	Start, End int
}

// SpanText implements Annotation.
func (l Linked) SpanText() string { return l.Span }

// ID implements Annotation.
func (l Linked) ID() int64 { return l.ItemID }

// Label implements Annotation.
func (l Linked) Label() string { return l.ItemName }

// Description implements Annotation.
func (l Linked) Description() string { return l.Desc }

// Closer is implemented by annotators that hold resources.
type Closer interface {
	Close() error
}

// Close releases a's resources if it holds any.
func Close(a Annotator) error {
	if c, ok := a.(Closer); ok {
		return c.Close()
	}
	return nil
}
