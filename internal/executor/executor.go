// Package executor runs compiled execution queues: the reference dispatcher
// for one audio block.
//
// Run arms every item with its activation limit, seeds the items that wait
// for nothing, and lets a pool of workers drain a ready channel. When an item
// finishes (or is skipped) each successor is signalled; the one signal that
// brings a successor's pending count to zero makes it ready. The run is over
// once every item has been processed.
package executor

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/queue"
	"golang.org/x/sync/errgroup"
)

// Executor dispatches queue items on a fixed number of workers.
type Executor struct {
	workers int
}

// New creates an executor. A non-positive worker count means one worker per
// CPU.
func New(workers int) *Executor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Executor{workers: workers}
}

// Workers returns the size of the worker pool.
func (e *Executor) Workers() int {
	return e.workers
}

// Stats summarises one Run.
type Stats struct {
	Ran     int
	Skipped int
}

// run is the state of a single dispatch.
type run struct {
	ready     chan *queue.Item
	remaining atomic.Int64
	ran       atomic.Int64
	skipped   atomic.Int64
}

// Run processes every item of q once. Paused jobs are skipped, as is every
// job reached after ctx is cancelled; skipped items still release their
// successors so the run always drains. The returned error is ctx.Err().
func (e *Executor) Run(ctx context.Context, q *queue.Queue) (Stats, error) {
	logger := ctxlog.FromContext(ctx)
	if q.Empty() {
		logger.Debug("Execution queue is empty, nothing to dispatch.", "plan", q.ID().String())
		return Stats{}, ctx.Err()
	}

	r := &run{ready: make(chan *queue.Item, q.Len())}
	r.remaining.Store(int64(q.Len()))
	for _, it := range q.Items() {
		it.Arm()
	}
	for _, it := range q.Runnable() {
		r.ready <- it
	}

	workers := min(e.workers, q.Len())
	logger.Debug("Dispatch started.", "plan", q.ID().String(), "items", q.Len(), "workers", workers)

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			e.worker(ctx, r, i)
			return nil
		})
	}
	_ = g.Wait()

	stats := Stats{Ran: int(r.ran.Load()), Skipped: int(r.skipped.Load())}
	logger.Debug("Dispatch finished.", "plan", q.ID().String(), "ran", stats.Ran, "skipped", stats.Skipped)
	return stats, ctx.Err()
}
