package node

import (
	"fmt"

	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/queue"
)

// ParallelGroup declares its children independent. The list order is kept
// for iteration but carries no meaning.
type ParallelGroup struct {
	group
}

// NewParallelGroup creates a detached, empty parallel group holding one
// caller reference.
func NewParallelGroup(id nodeid.ID) *ParallelGroup {
	g := &ParallelGroup{}
	g.initGroup(id, true, g)
	return g
}

// AddChildAt adds n to the group. Head and Tail are equivalent here.
func (g *ParallelGroup) AddChildAt(n Node, pos Position) error {
	switch pos {
	case Head, Tail:
		return g.AddChild(n)
	default:
		return fmt.Errorf("%w: %s needs a sibling target", ErrInvalidPosition, pos)
	}
}

// InsertChild adds n to the group. A Before/After target must be a child, but
// the resulting order is not part of the contract.
func (g *ParallelGroup) InsertChild(n Node, c Constraint) error {
	switch c.Position {
	case Head, Tail:
		if !g.targetsSelf(c) {
			return fmt.Errorf("%w: %s target must be group %s", ErrInvalidPosition, c.Position, g.id)
		}
	case Before, After:
		if _, err := g.siblingElem(c); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPosition, c.Position)
	}
	return g.AddChild(n)
}

// TailNodes sums the tails of every child: all of them may be outstanding at
// once and whatever follows must wait for each.
func (g *ParallelGroup) TailNodes() int {
	n := 0
	for e := g.children.Front(); e != nil; e = e.Next() {
		n += tailCount(e.Value)
	}
	return n
}

// fillQueue compiles every child against the same successors and limit and
// returns the union of their heads.
func (g *ParallelGroup) fillQueue(c *compiler, successors queue.Successors, limit int) queue.Successors {
	var heads queue.Successors
	for e := g.children.Front(); e != nil; e = e.Next() {
		switch child := e.Value.(type) {
		case *Synth:
			heads = append(heads, c.q.Add(child, successors, limit))
		case Group:
			if c.tail(child) == 0 {
				continue
			}
			heads = append(heads, child.fillQueue(c, successors, limit)...)
		}
	}
	if len(heads) == 0 {
		return successors
	}
	return heads
}
