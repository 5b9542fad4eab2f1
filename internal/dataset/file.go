package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/untoldecay/entitylink/internal/types"
)

// FileSource reads a local HotpotQA dump: either a JSON array of records
// (the published layout) or JSON Lines. Subset and split are not used to
// select data; the file is the split.
type FileSource struct {
	Path string
}

// Open implements Source.
func (f *FileSource) Open(ctx context.Context, req Request) (Iterator, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	r := bufio.NewReader(file)
	first, err := peekNonSpace(r)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = file.Close()
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	it := &fileIterator{file: file, dec: json.NewDecoder(r), array: first == '['}
	if first == 0 {
		it.done = true
	} else if it.array {
		if _, err := it.dec.Token(); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to read dataset file: %w", err)
		}
	}

	if req.Streaming {
		return it, nil
	}
	defer func() { _ = it.Close() }()
	records, err := Collect(ctx, it)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(records), nil
}

func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, r.UnreadByte()
	}
}

// fileIterator decodes one record per Next call.
type fileIterator struct {
	file  *os.File
	dec   *json.Decoder
	array bool
	done  bool
	n     int
	cur   types.QARecord
	err   error
}

func (it *fileIterator) Next(ctx context.Context) bool {
	if it.done || it.err != nil || ctx.Err() != nil {
		return false
	}
	if !it.dec.More() {
		it.done = true
		return false
	}
	var raw json.RawMessage
	if err := it.dec.Decode(&raw); err != nil {
		it.err = fmt.Errorf("record %d: %w", it.n, err)
		return false
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		it.err = fmt.Errorf("record %d: %w", it.n, err)
		return false
	}
	it.n++
	it.cur = rec
	return true
}

func (it *fileIterator) Record() types.QARecord { return it.cur }
func (it *fileIterator) Err() error             { return it.err }

func (it *fileIterator) Close() error {
	it.done = true
	if it.file == nil {
		return nil
	}
	err := it.file.Close()
	it.file = nil
	return err
}
