package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/node"
	"github.com/specialistvlad/novagraph/internal/queue"
)

// Compile returns the execution queue for the current tree. The previous
// queue is returned as long as no structural edit happened since it was
// built.
func (g *NodeGraph) Compile(ctx context.Context) (*queue.Queue, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	logger := ctxlog.FromContext(ctx)

	if !g.dirty && g.plan != nil {
		return g.plan, nil
	}

	q := node.Compile(g.root)
	if g.validate {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("compiled plan %s is invalid: %w", q.ID(), err)
		}
	}
	logger.Debug("Execution plan compiled.",
		"plan", q.ID().String(),
		"items", q.Len(),
		"runnable", len(q.Runnable()),
		"edges", q.Edges(),
	)

	g.plan = q
	g.dirty = false
	return q, nil
}

// Dirty reports whether the next Compile will build a new plan.
func (g *NodeGraph) Dirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dirty || g.plan == nil
}
