package node

import (
	"fmt"
	"iter"

	list "github.com/bahlo/generic-list-go"
	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/queue"
)

// Group is the behaviour shared by sequential and parallel groups. Only the
// two implementations in this package satisfy it.
type Group interface {
	Node

	IsParallel() bool

	// AddChild appends n. It fails with ErrAlreadyAttached if n has a parent.
	AddChild(n Node) error
	// AddChildAt inserts n at the Head or Tail of the group.
	AddChildAt(n Node, pos Position) error
	// InsertChild inserts n relative to a constraint target.
	InsertChild(n Node, c Constraint) error
	// RemoveChild detaches n and drops the group's reference to it.
	RemoveChild(n Node) error
	HasChild(n Node) bool
	Empty() bool

	// NextNode and PreviousNode return the sibling adjacent to a child, or
	// nil at the boundary or if n is not a child.
	NextNode(n Node) Node
	PreviousNode(n Node) Node
	// Head and Tail return the first and last child.
	Head() Node
	Tail() Node

	ChildCount() int
	ChildCountDeep() (synths, groups int)
	HasSynthChildren() bool

	FreeChildren()
	FreeSynthsDeep()

	ApplyOnChildren(f func(Node))
	Children() iter.Seq[Node]

	// TailNodes returns how many items a compiled subtree ends in, which is
	// the activation limit for whatever follows it.
	TailNodes() int

	fillQueue(c *compiler, successors queue.Successors, limit int) queue.Successors
	core() *group
}

// group is the common record embedded by both variants.
type group struct {
	nodeBase

	parallel bool
	children *list.List[Node]

	childSynths int
	childGroups int
}

func (g *group) initGroup(id nodeid.ID, parallel bool, self Group) {
	g.init(id, KindGroup, self)
	g.parallel = parallel
	g.children = list.New[Node]()
}

func (g *group) core() *group { return g }

func (g *group) outer() Group { return g.self.(Group) }

// IsParallel reports whether the children may run concurrently.
func (g *group) IsParallel() bool { return g.parallel }

// AddChild appends n as the last child.
func (g *group) AddChild(n Node) error {
	return g.attach(n, func(v Node) *list.Element[Node] {
		return g.children.PushBack(v)
	})
}

// HasChild reports whether n is a direct child, without scanning.
func (g *group) HasChild(n Node) bool {
	if n == nil {
		return false
	}
	b := n.base()
	return b.parent == g && b.elem != nil
}

// Empty reports whether the group has no children at all.
func (g *group) Empty() bool { return g.children.Len() == 0 }

// RemoveChild detaches a direct child.
func (g *group) RemoveChild(n Node) error {
	if !g.HasChild(n) {
		return fmt.Errorf("%w: node %s in group %s", ErrNotChild, nodeID(n), g.id)
	}
	g.detach(n)
	return nil
}

// NextNode returns the child after n.
func (g *group) NextNode(n Node) Node {
	if !g.HasChild(n) {
		return nil
	}
	if next := n.base().elem.Next(); next != nil {
		return next.Value
	}
	return nil
}

// PreviousNode returns the child before n.
func (g *group) PreviousNode(n Node) Node {
	if !g.HasChild(n) {
		return nil
	}
	if prev := n.base().elem.Prev(); prev != nil {
		return prev.Value
	}
	return nil
}

// Head returns the first child or nil.
func (g *group) Head() Node {
	if e := g.children.Front(); e != nil {
		return e.Value
	}
	return nil
}

// Tail returns the last child or nil.
func (g *group) Tail() Node {
	if e := g.children.Back(); e != nil {
		return e.Value
	}
	return nil
}

// ChildCount returns the number of direct children.
func (g *group) ChildCount() int {
	return g.childSynths + g.childGroups
}

// ChildCountDeep counts synths and groups anywhere below g.
func (g *group) ChildCountDeep() (synths, groups int) {
	synths, groups = g.childSynths, g.childGroups
	for e := g.children.Front(); e != nil; e = e.Next() {
		if child, ok := e.Value.(Group); ok {
			s, gr := child.ChildCountDeep()
			synths += s
			groups += gr
		}
	}
	return synths, groups
}

// HasSynthChildren reports whether any synth exists below g.
func (g *group) HasSynthChildren() bool {
	for e := g.children.Front(); e != nil; e = e.Next() {
		switch child := e.Value.(type) {
		case *Synth:
			return true
		case Group:
			if child.HasSynthChildren() {
				return true
			}
		}
	}
	return false
}

// FreeChildren detaches every direct child.
func (g *group) FreeChildren() {
	for e := g.children.Front(); e != nil; {
		next := e.Next()
		g.detach(e.Value)
		e = next
	}
	if g.childSynths != 0 || g.childGroups != 0 {
		panic(fmt.Sprintf("node: group %s still counts children after FreeChildren", g.id))
	}
}

// FreeSynthsDeep removes every synth in the subtree, keeping all groups.
func (g *group) FreeSynthsDeep() {
	for e := g.children.Front(); e != nil; {
		next := e.Next()
		if e.Value.IsSynth() {
			g.detach(e.Value)
		}
		e = next
	}
	for e := g.children.Front(); e != nil; e = e.Next() {
		e.Value.(Group).FreeSynthsDeep()
	}
	if g.childSynths != 0 {
		panic(fmt.Sprintf("node: group %s still counts synths after FreeSynthsDeep", g.id))
	}
}

// ApplyOnChildren calls f on every direct child in sequence order. f may
// detach the child it is given.
func (g *group) ApplyOnChildren(f func(Node)) {
	for e := g.children.Front(); e != nil; {
		next := e.Next()
		f(e.Value)
		e = next
	}
}

// Children iterates the direct children in sequence order.
func (g *group) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for e := g.children.Front(); e != nil; {
			next := e.Next()
			if !yield(e.Value) {
				return
			}
			e = next
		}
	}
}

// Pause marks the group and every descendant paused.
func (g *group) Pause() {
	g.nodeBase.Pause()
	for e := g.children.Front(); e != nil; e = e.Next() {
		e.Value.Pause()
	}
}

// Resume clears the paused mark on the group and every descendant.
func (g *group) Resume() {
	g.nodeBase.Resume()
	for e := g.children.Front(); e != nil; e = e.Next() {
		e.Value.Resume()
	}
}

// Set assigns a control on every synth below g.
func (g *group) Set(control string, value float32) {
	for e := g.children.Front(); e != nil; e = e.Next() {
		e.Value.Set(control, value)
	}
}

// attach is the single place where a parent link is established.
func (g *group) attach(n Node, insert func(Node) *list.Element[Node]) error {
	b := n.base()
	if b.parent != nil {
		return fmt.Errorf("%w: node %s belongs to group %s", ErrAlreadyAttached, b.id, b.parent.id)
	}
	if child, ok := n.(Group); ok {
		for p := g; p != nil; p = p.parent {
			if p == child.core() {
				return fmt.Errorf("%w: group %s into %s", ErrAncestor, b.id, g.id)
			}
		}
	}

	b.AddRef()
	b.elem = insert(n)
	b.parent = g
	// A paused group keeps its whole subtree paused, including late arrivals.
	if g.Paused() {
		n.Pause()
	}
	if b.kind == KindSynth {
		g.childSynths++
	} else {
		g.childGroups++
	}
	return nil
}

// detach is the single place where a parent link is cleared.
func (g *group) detach(n Node) {
	b := n.base()
	g.children.Remove(b.elem)
	b.elem = nil
	b.parent = nil
	if b.kind == KindSynth {
		g.childSynths--
	} else {
		g.childGroups--
	}
	b.Release()
}

// siblingElem resolves a Before/After target to its list element.
func (g *group) siblingElem(c Constraint) (*list.Element[Node], error) {
	if !g.HasChild(c.Target) {
		return nil, fmt.Errorf("%w: %s target %s in group %s", ErrNotChild, c.Position, nodeID(c.Target), g.id)
	}
	return c.Target.base().elem, nil
}

// targetsSelf reports whether a Head/Tail constraint names this group.
func (g *group) targetsSelf(c Constraint) bool {
	return c.Target == nil || c.Target.base() == &g.nodeBase
}

func nodeID(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.ID().String()
}

// tailCount is the number of items a compiled node ends in.
func tailCount(n Node) int {
	if g, ok := n.(Group); ok {
		return g.TailNodes()
	}
	return 1
}
