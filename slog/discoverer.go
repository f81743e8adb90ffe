package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/capdata"
)

// Ensure LoggingLinkDiscoverer implements capdata.LinkDiscoverer.
var _ capdata.LinkDiscoverer = (*LoggingLinkDiscoverer)(nil)

// LoggingLinkDiscoverer wraps a LinkDiscoverer, logging each team link at
// debug level and the total at info level.
type LoggingLinkDiscoverer struct {
	next   capdata.LinkDiscoverer
	logger *slog.Logger
}

// NewLoggingLinkDiscoverer creates a new LoggingLinkDiscoverer.
func NewLoggingLinkDiscoverer(next capdata.LinkDiscoverer, logger *slog.Logger) *LoggingLinkDiscoverer {
	return &LoggingLinkDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs what it found.
func (d *LoggingLinkDiscoverer) Discover(html string) (teams []capdata.TeamLocator, err error) {
	defer func(begin time.Time) {
		for _, team := range teams {
			d.logger.Debug("team link", "url", string(team))
		}
		d.logger.Info("team links",
			"count", len(teams),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(html)
}
