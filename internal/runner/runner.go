// Package runner drives one extraction run: load a bounded number of records,
// link the entities in each question, then display and persist the rows.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/untoldecay/entitylink/internal/annotator"
	"github.com/untoldecay/entitylink/internal/dataset"
	"github.com/untoldecay/entitylink/internal/export"
	"github.com/untoldecay/entitylink/internal/extractor"
	"github.com/untoldecay/entitylink/internal/types"
	"github.com/untoldecay/entitylink/internal/ui"
)

// DefaultLimit is the number of records processed per run.
const DefaultLimit = 5

// Logger receives operational events. User-facing output goes to Runner.Out.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Runner holds everything a run needs. The annotator is constructed, and
// failures reported, before a Runner exists.
type Runner struct {
	Source    dataset.Source
	Annotator annotator.Annotator
	// Limit caps the records pulled from the source. Zero means DefaultLimit.
	Limit int
	// Export configures the results file.
	Export export.Config
	// Out receives progress, the table and the final message. Defaults to stdout.
	Out io.Writer
	Log Logger
}

// Summary describes a finished run.
type Summary struct {
	Processed  int
	Rows       []types.ResultRow
	OutputPath string
	// Written is false when no entities were extracted and no file was produced.
	Written bool
}

// Run executes the pipeline for req. Any error aborts the run before the
// results file is written.
func (r *Runner) Run(ctx context.Context, req dataset.Request) (*Summary, error) {
	if r.Source == nil {
		return nil, errors.New("runner: no dataset source")
	}
	if r.Annotator == nil {
		return nil, errors.New("runner: no annotator")
	}
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	log := r.Log
	if log == nil {
		log = nopLogger{}
	}
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	exp := r.Export
	if exp.Path == "" {
		exp.Path = export.DefaultOutputPath
	}
	if exp.Indent == "" {
		exp.Indent = export.DefaultConfig().Indent
	}

	start := time.Now()
	log.Info("run started", "dataset", req.Dataset, "subset", req.Subset, "split", req.Split,
		"streaming", req.Streaming, "limit", limit, "annotator", r.Annotator.Name())

	rows, processed, err := r.process(ctx, req, limit, out, log)
	if err != nil {
		log.Error("run failed", "processed", processed, "error", err)
		return nil, err
	}

	summary := &Summary{Processed: processed, Rows: rows, OutputPath: exp.Path}
	if len(rows) == 0 {
		fmt.Fprintln(out, "\nNo entities extracted.")
		log.Info("run finished", "processed", processed, "rows", 0, "duration", time.Since(start))
		return summary, nil
	}

	if err := exportRows(exp, rows, out); err != nil {
		log.Error("export failed", "path", exp.Path, "error", err)
		return nil, err
	}
	summary.Written = true
	log.Info("run finished", "processed", processed, "rows", len(rows),
		"output", exp.Path, "duration", time.Since(start))
	return summary, nil
}

func (r *Runner) process(ctx context.Context, req dataset.Request, limit int, out io.Writer, log Logger) ([]types.ResultRow, int, error) {
	it, err := dataset.Load(ctx, r.Source, req, out)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if cerr := it.Close(); cerr != nil {
			log.Warn("closing dataset iterator", "error", cerr)
		}
	}()

	pipeline := extractor.NewPipeline(r.Annotator)
	var rows []types.ResultRow
	processed := 0

	fmt.Fprintln(out, "Processing samples...")
	for processed < limit && it.Next(ctx) {
		rec := it.Record()
		processed++
		fmt.Fprintf(out, "Processing question %d: %s\n", processed, rec.Question)

		res, err := pipeline.Run(ctx, rec.Question)
		if err != nil {
			return nil, processed, fmt.Errorf("question %s: %w", rec.ID, err)
		}
		log.Info("question annotated", "question_id", rec.ID, "mentions", len(res.Mentions),
			"duration", res.Duration)
		rows = append(rows, export.Flatten(rec, res.Mentions)...)
	}
	if err := it.Err(); err != nil {
		return nil, processed, fmt.Errorf("read dataset: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, processed, err
	}
	return rows, processed, nil
}

func exportRows(exp export.Config, rows []types.ResultRow, out io.Writer) error {
	fmt.Fprintln(out, "\nExtracted Entities:")
	if err := ui.RenderRows(out, export.DisplayHeader, export.DisplayRows(rows)); err != nil {
		return err
	}
	if err := export.WriteJSON(exp, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nResults saved to %s\n", exp.Path)
	return nil
}
