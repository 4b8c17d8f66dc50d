// Package source feeds timestamped events to the streaming chart.
package source

import (
	"context"

	"github.com/kpumuk/lazychart/internal/bucket"
)

// Source produces batches of events.
type Source interface {
	// Run sends batches to out until ctx is done. The returned error is nil
	// when ctx ended the run.
	Run(ctx context.Context, out chan<- []bucket.Point) error
	// Name describes the source for the status bar.
	Name() string
}

func send(ctx context.Context, out chan<- []bucket.Point, batch []bucket.Point) bool {
	if len(batch) == 0 {
		return true
	}
	select {
	case out <- batch:
		return true
	case <-ctx.Done():
		return false
	}
}
