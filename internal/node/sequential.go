package node

import (
	"fmt"

	list "github.com/bahlo/generic-list-go"
	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/queue"
)

// SequentialGroup runs its children one after another in list order.
type SequentialGroup struct {
	group
}

// NewSequentialGroup creates a detached, empty sequential group holding one
// caller reference.
func NewSequentialGroup(id nodeid.ID) *SequentialGroup {
	g := &SequentialGroup{}
	g.initGroup(id, false, g)
	return g
}

// AddChildAt inserts n first (Head) or last (Tail).
func (g *SequentialGroup) AddChildAt(n Node, pos Position) error {
	switch pos {
	case Head:
		return g.attach(n, func(v Node) *list.Element[Node] {
			return g.children.PushFront(v)
		})
	case Tail:
		return g.AddChild(n)
	default:
		return fmt.Errorf("%w: %s needs a sibling target", ErrInvalidPosition, pos)
	}
}

// InsertChild places n exactly where the constraint says.
func (g *SequentialGroup) InsertChild(n Node, c Constraint) error {
	switch c.Position {
	case Head, Tail:
		if !g.targetsSelf(c) {
			return fmt.Errorf("%w: %s target must be group %s", ErrInvalidPosition, c.Position, g.id)
		}
		return g.AddChildAt(n, c.Position)
	case Before:
		mark, err := g.siblingElem(c)
		if err != nil {
			return err
		}
		return g.attach(n, func(v Node) *list.Element[Node] {
			return g.children.InsertBefore(v, mark)
		})
	case After:
		mark, err := g.siblingElem(c)
		if err != nil {
			return err
		}
		return g.attach(n, func(v Node) *list.Element[Node] {
			return g.children.InsertAfter(v, mark)
		})
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPosition, c.Position)
	}
}

// TailNodes is 1 if any child (searched from the end) has something to run
// and 0 otherwise. A nested group reports its own count, which may be more
// than one for a parallel group.
func (g *SequentialGroup) TailNodes() int {
	for e := g.children.Back(); e != nil; e = e.Prev() {
		if n := tailCount(e.Value); n > 0 {
			return n
		}
	}
	return 0
}

// fillQueue compiles the children back to front so that each child already
// knows the heads of the child that follows it.
func (g *SequentialGroup) fillQueue(c *compiler, successors queue.Successors, limit int) queue.Successors {
	e, _ := c.executableFrom(g.children.Back())
	for e != nil {
		prev, prevTails := c.executableFrom(e.Prev())
		headLimit := limit
		if prev != nil {
			headLimit = prevTails
		}

		switch child := e.Value.(type) {
		case *Synth:
			successors = queue.Successors{c.q.Add(child, successors, headLimit)}
		case Group:
			successors = child.fillQueue(c, successors, headLimit)
		}
		e = prev
	}
	return successors
}

// executableFrom walks backwards from e to the first node with something to
// run and returns it with its tail count.
func (c *compiler) executableFrom(e *list.Element[Node]) (*list.Element[Node], int) {
	for ; e != nil; e = e.Prev() {
		if n := c.tail(e.Value); n > 0 {
			return e, n
		}
	}
	return nil, 0
}
