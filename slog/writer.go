package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/capdata"
)

// Ensure LoggingWriter implements capdata.DatasetWriter.
var _ capdata.DatasetWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a DatasetWriter with info logging.
type LoggingWriter struct {
	name   string
	next   capdata.DatasetWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter. name identifies the sink in
// log output, e.g. "sqlite".
func NewLoggingWriter(name string, next capdata.DatasetWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{name: name, next: next, logger: logger}
}

// WriteRun delegates to the wrapped writer and logs the outcome.
func (w *LoggingWriter) WriteRun(ctx context.Context, run *capdata.Run) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write datasets",
			"sink", w.name,
			"run", run.ID,
			"datasets", len(run.Datasets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRun(ctx, run)
}
