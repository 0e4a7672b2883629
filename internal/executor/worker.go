package executor

import (
	"context"

	"github.com/specialistvlad/novagraph/internal/ctxlog"
)

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, r *run, workerID int) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)

	for it := range r.ready {
		job := it.Job()
		switch {
		case ctx.Err() != nil:
			r.skipped.Add(1)
		case job.Paused():
			logger.Debug("Skipping paused node.", "nodeID", job.ID())
			r.skipped.Add(1)
		default:
			job.Run()
			r.ran.Add(1)
		}

		for _, next := range it.Successors() {
			if next.Signal() {
				r.ready <- next
			}
		}
		if r.remaining.Add(-1) == 0 {
			close(r.ready)
		}
	}
}
