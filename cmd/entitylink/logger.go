package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// runLogger adapts slog to the runner's Info/Warn/Error logger.
type runLogger struct {
	logger *slog.Logger
}

func (l *runLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *runLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *runLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// newRunLogger writes to a rotated log file at path (skipped when empty) and
// also to stderr when verbose. Every record carries the run id.
func newRunLogger(path string, maxSizeMB, maxBackups int, verbose bool, stderr io.Writer) (*runLogger, func()) {
	var writers []io.Writer
	closeFn := func() {}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			rotator := &lumberjack.Logger{
				Filename:   path,
				MaxSize:    maxSizeMB,
				MaxBackups: maxBackups,
			}
			writers = append(writers, rotator)
			closeFn = func() { _ = rotator.Close() }
		}
	}
	if verbose && stderr != nil {
		writers = append(writers, stderr)
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &runLogger{logger: slog.New(handler).With("run_id", uuid.NewString())}, closeFn
}
