package crawl

import (
	"context"

	"github.com/fwojciec/capdata"
	"golang.org/x/sync/errgroup"
)

// Ensure MultiWriter implements capdata.DatasetWriter at compile time.
var _ capdata.DatasetWriter = MultiWriter(nil)

// MultiWriter writes a run to every writer concurrently. The run is shared
// read-only between writers. The first error cancels the others.
type MultiWriter []capdata.DatasetWriter

// WriteRun writes run to all writers and returns the first error.
func (m MultiWriter) WriteRun(ctx context.Context, run *capdata.Run) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range m {
		g.Go(func() error {
			return w.WriteRun(gctx, run)
		})
	}
	return g.Wait()
}
