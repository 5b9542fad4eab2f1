package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/untoldecay/entitylink/internal/annotator"
	"github.com/untoldecay/entitylink/internal/config"
	"github.com/untoldecay/entitylink/internal/dataset"
	"github.com/untoldecay/entitylink/internal/debug"
	"github.com/untoldecay/entitylink/internal/export"
	"github.com/untoldecay/entitylink/internal/runner"
	"github.com/untoldecay/entitylink/internal/storage/sqlite"
)

// runPipeline builds the annotator and dataset source from config and runs
// one extraction.
func runPipeline(ctx context.Context, out io.Writer) error {
	log, closeLog := newRunLogger(config.GetString(config.KeyLogFile),
		config.GetInt(config.KeyLogMaxSizeMB), config.GetInt(config.KeyLogMaxBackups),
		config.GetBool(config.KeyVerbose), os.Stderr)
	defer closeLog()

	ann, err := buildAnnotator(ctx)
	if err != nil {
		log.Error("annotator unavailable", "error", err)
		return err
	}
	defer func() {
		if err := annotator.Close(ann); err != nil {
			log.Warn("closing annotator", "error", err)
		}
	}()

	src, closeSrc, err := buildSource(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	exp := export.DefaultConfig()
	exp.Path = config.GetString(config.KeyOutput)

	r := &runner.Runner{
		Source:    src,
		Annotator: ann,
		Limit:     config.GetInt(config.KeyLimit),
		Export:    exp,
		Out:       out,
		Log:       log,
	}
	_, err = r.Run(ctx, datasetRequest())
	return err
}

func datasetRequest() dataset.Request {
	return dataset.Request{
		Dataset:   config.GetString(config.KeyDatasetName),
		Subset:    config.GetString(config.KeyDatasetSubset),
		Split:     config.GetString(config.KeyDatasetSplit),
		Streaming: config.GetBool(config.KeyDatasetStreaming),
	}
}

// buildAnnotator constructs the configured backend. The returned error
// carries the guidance printed to the user.
func buildAnnotator(ctx context.Context) (annotator.Annotator, error) {
	cfg := annotator.Config{
		Backend:         config.GetString(config.KeyAnnotator),
		KBPath:          config.GetString(config.KeyKBPath),
		MaxNGram:        config.GetInt(config.KeyKBMaxNGram),
		OllamaModel:     config.GetString(config.KeyOllamaModel),
		AnthropicModel:  config.GetString(config.KeyAnthropicModel),
		AnthropicAPIKey: config.GetString(config.KeyAnthropicAPIKey),
	}
	debug.Logf("Debug: annotator backend %q", cfg.Backend)

	ann, err := annotator.New(ctx, cfg)
	switch {
	case err == nil:
		return ann, nil
	case errors.Is(err, annotator.ErrModelNotFound):
		return nil, fmt.Errorf("%w\nKnowledge base not found at %s. Build it with 'entitylink kb import <entities.jsonl>'",
			err, cfg.KBPath)
	case errors.Is(err, annotator.ErrUnavailable):
		return nil, fmt.Errorf("%w\nStart the server with 'ollama serve' and pull the model with 'ollama pull %s'",
			err, cfg.OllamaModel)
	default:
		return nil, err
	}
}

// buildSource returns a local file source when dataset.file is set, otherwise
// the Hub source, with the sqlite page cache when dataset.cache is set.
func buildSource(ctx context.Context) (dataset.Source, func(), error) {
	if path := config.GetString(config.KeyDatasetFile); path != "" {
		debug.Logf("Debug: reading records from %s", path)
		return &dataset.FileSource{Path: path}, func() {}, nil
	}

	hub := dataset.NewHubSource(config.GetString(config.KeyDatasetEndpoint),
		config.GetDuration(config.KeyDatasetTimeout), config.GetFloat64(config.KeyDatasetRate))

	cachePath := config.GetString(config.KeyDatasetCache)
	if cachePath == "" {
		return hub, func() {}, nil
	}
	cache, err := sqlite.New(ctx, cachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open page cache: %w", err)
	}
	debug.Logf("Debug: caching dataset pages in %s", cachePath)
	return hub.WithCache(cache), func() { _ = cache.Close() }, nil
}
