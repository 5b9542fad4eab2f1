// Package dataset loads question/answer records from a dataset source.
//
// Sources hand out an Iterator that is pulled one record at a time, in
// source order. A streaming source fetches lazily as the iterator advances;
// an eager source materializes everything before Open returns.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/untoldecay/entitylink/internal/types"
)

// ErrUnknownSplit is returned when the requested subset/split pair does not exist.
var ErrUnknownSplit = errors.New("unknown dataset configuration or split")

// Request names the slice of a dataset to load.
type Request struct {
	Dataset   string
	Subset    string
	Split     string
	Streaming bool
}

func (r Request) String() string {
	return fmt.Sprintf("%s (%s, %s)", r.Dataset, r.Subset, r.Split)
}

// Source opens iterators over a dataset.
type Source interface {
	Open(ctx context.Context, req Request) (Iterator, error)
}

// Iterator yields records in source order. Usage mirrors sql.Rows:
//
//	for it.Next(ctx) {
//	    rec := it.Record()
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator interface {
	Next(ctx context.Context) bool
	Record() types.QARecord
	Err() error
	Close() error
}

// Load announces the load on out and opens req from src.
func Load(ctx context.Context, src Source, req Request, out io.Writer) (Iterator, error) {
	if out != nil {
		fmt.Fprintf(out, "Loading %s dataset (%s, %s)...\n", req.Dataset, req.Subset, req.Split)
	}
	it, err := src.Open(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", req, err)
	}
	return it, nil
}

// sliceIterator iterates over records already in memory.
type sliceIterator struct {
	records []types.QARecord
	pos     int
	cur     types.QARecord
}

// NewSliceIterator returns an Iterator over records.
func NewSliceIterator(records []types.QARecord) Iterator {
	return &sliceIterator{records: records}
}

func (s *sliceIterator) Next(ctx context.Context) bool {
	if ctx.Err() != nil || s.pos >= len(s.records) {
		return false
	}
	s.cur = s.records[s.pos]
	s.pos++
	return true
}

func (s *sliceIterator) Record() types.QARecord { return s.cur }
func (s *sliceIterator) Err() error             { return nil }
func (s *sliceIterator) Close() error           { return nil }

// Collect drains it into a slice, stopping early if ctx is cancelled.
func Collect(ctx context.Context, it Iterator) ([]types.QARecord, error) {
	var out []types.QARecord
	for it.Next(ctx) {
		out = append(out, it.Record())
	}
	if err := it.Err(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}
