package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/queue"
)

// Run executes the block loop: compile the graph (reusing the cached plan
// when nothing changed), journal new plans, dispatch. Cancelling ctx stops
// the loop after the current block and is not an error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	var ticker *time.Ticker
	if a.config.BlockInterval > 0 {
		ticker = time.NewTicker(a.config.BlockInterval)
		defer ticker.Stop()
	}

	a.logger.Info("🚀 Starting block loop...", "blocks", a.config.Blocks, "workers", a.executor.Workers())
	var ran, skipped int
	for a.config.Blocks == 0 || a.block.Load() < int64(a.config.Blocks) {
		if ctx.Err() != nil {
			a.logger.Info("Block loop interrupted.", "block", a.block.Load(), "reason", ctx.Err())
			break
		}
		q, err := a.graph.Compile(ctx)
		if err != nil {
			return fmt.Errorf("block %d: %w", a.block.Load(), err)
		}
		if err := a.journal(ctx, q); err != nil {
			return err
		}
		a.current.Store(q)

		stats, err := a.executor.Run(ctx, q)
		ran += stats.Ran
		skipped += stats.Skipped
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.logger.Info("Block loop interrupted.", "block", a.block.Load(), "reason", err)
			break
		}
		a.block.Add(1)

		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				a.logger.Info("Block loop interrupted.", "block", a.block.Load(), "reason", ctx.Err())
				return a.finish(ran, skipped)
			}
		}
	}
	return a.finish(ran, skipped)
}

func (a *App) finish(ran, skipped int) error {
	a.logger.Info("🏁 Execution finished.", "blocks", a.block.Load(), "ran", ran, "skipped", skipped)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// journal records q the first time it is dispatched.
func (a *App) journal(ctx context.Context, q *queue.Queue) error {
	id := q.ID().String()
	if a.plans == nil || id == a.lastPlan {
		return nil
	}
	if err := a.plans.Record(ctx, a.block.Load(), q); err != nil {
		return fmt.Errorf("failed to record plan %s: %w", id, err)
	}
	a.lastPlan = id
	a.logger.Debug("Plan recorded.", "plan", id, "block", a.block.Load(), "items", q.Len())
	return nil
}
