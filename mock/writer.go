package mock

import (
	"context"

	"github.com/fwojciec/capdata"
)

var _ capdata.DatasetWriter = (*DatasetWriter)(nil)

// DatasetWriter is a mock implementation of capdata.DatasetWriter.
type DatasetWriter struct {
	WriteRunFn func(ctx context.Context, run *capdata.Run) error
}

func (w *DatasetWriter) WriteRun(ctx context.Context, run *capdata.Run) error {
	return w.WriteRunFn(ctx, run)
}
