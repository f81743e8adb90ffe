package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/capdata"
)

// Ensure LoggingLocator implements capdata.TableLocator.
var _ capdata.TableLocator = (*LoggingLocator)(nil)

// LoggingLocator wraps a TableLocator with debug logging.
type LoggingLocator struct {
	next   capdata.TableLocator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next capdata.TableLocator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the fragment size.
func (l *LoggingLocator) Locate(html string, kind capdata.PageKind) (frag *capdata.Fragment, err error) {
	defer func(begin time.Time) {
		cells := 0
		if frag != nil {
			cells = frag.Cells()
		}
		l.logger.Debug("locate",
			"kind", string(kind),
			"cells", cells,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(html, kind)
}
