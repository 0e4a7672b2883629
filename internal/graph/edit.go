package graph

import (
	"fmt"

	"github.com/specialistvlad/novagraph/internal/node"
	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// AddSynth creates a synth and places it. Pass nodeid.Auto to have an id
// allocated.
func (g *NodeGraph) AddSynth(id nodeid.ID, def string, unit node.Unit, p Placement) (*node.Synth, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := node.NewSynth(g.claim(id), def, unit)
	if err := g.adopt(s, p); err != nil {
		return nil, err
	}
	return s, nil
}

// AddGroup creates an empty sequential or parallel group and places it.
func (g *NodeGraph) AddGroup(id nodeid.ID, parallel bool, p Placement) (node.Group, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var grp node.Group
	if parallel {
		grp = node.NewParallelGroup(g.claim(id))
	} else {
		grp = node.NewSequentialGroup(g.claim(id))
	}
	if err := g.adopt(grp, p); err != nil {
		return nil, err
	}
	return grp, nil
}

// adopt registers a freshly created node and attaches it. On success the
// parent holds the node's only reference.
func (g *NodeGraph) adopt(n node.Node, p Placement) error {
	if _, err := g.nodes.Insert(n); err != nil {
		return fmt.Errorf("add %s %s: %w", n.Kind(), n.ID(), err)
	}
	n.SetReleaseHook(g.forget)

	err := g.place(n, p)
	n.Release()
	if err != nil {
		return fmt.Errorf("add %s %s at %s: %w", n.Kind(), n.ID(), p, err)
	}
	g.dirty = true
	return nil
}

// place attaches a detached node according to p.
func (g *NodeGraph) place(n node.Node, p Placement) error {
	target, err := g.lookup(p.Target)
	if err != nil {
		return err
	}

	switch p.Position {
	case node.Head, node.Tail:
		grp, ok := target.(node.Group)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotGroup, p.Target)
		}
		return grp.AddChildAt(n, p.Position)
	case node.Before, node.After:
		parent, err := g.parentOf(target)
		if err != nil {
			return err
		}
		return parent.InsertChild(n, node.Constraint{Target: target, Position: p.Position})
	case node.Replace:
		parent, err := g.parentOf(target)
		if err != nil {
			return err
		}
		if err := parent.InsertChild(n, node.Constraint{Target: target, Position: node.After}); err != nil {
			return err
		}
		return parent.RemoveChild(target)
	default:
		return fmt.Errorf("%w: %s", node.ErrInvalidPosition, p.Position)
	}
}

func (g *NodeGraph) parentOf(n node.Node) (node.Group, error) {
	if n.ID() == nodeid.Root {
		return nil, ErrRootImmutable
	}
	return n.Parent(), nil
}

// Free removes a node from the tree. A group takes its subtree with it.
func (g *NodeGraph) Free(id nodeid.ID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	parent, err := g.parentOf(n)
	if err != nil {
		return err
	}
	if err := parent.RemoveChild(n); err != nil {
		return err
	}
	g.dirty = true
	return nil
}

// Move detaches a node and places it again. If the new placement is
// rejected the node goes back where it was.
func (g *NodeGraph) Move(id nodeid.ID, p Placement) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	if id == nodeid.Root {
		return ErrRootImmutable
	}
	target, err := g.lookup(p.Target)
	if err != nil {
		return err
	}
	if n.IsGroup() && isAncestor(n, target) {
		return fmt.Errorf("%w: %s %s", ErrCycle, id, p)
	}
	if target == n {
		return fmt.Errorf("%w: %s relative to itself", node.ErrInvalidPosition, id)
	}

	parent, prev := n.Parent(), n.PreviousSibling()
	n.AddRef()
	defer n.Release()
	if err := parent.RemoveChild(n); err != nil {
		return err
	}
	if err := g.place(n, p); err != nil {
		restore(n, parent, prev)
		return fmt.Errorf("move %s to %s: %w", id, p, err)
	}
	g.dirty = true
	return nil
}

// restore puts n back after prev, or first when it had no predecessor.
func restore(n node.Node, parent node.Group, prev node.Node) {
	var err error
	if prev != nil {
		err = parent.InsertChild(n, node.Constraint{Target: prev, Position: node.After})
	} else {
		err = parent.AddChildAt(n, node.Head)
	}
	if err != nil {
		panic(fmt.Sprintf("graph: cannot restore %s: %v", n.ID(), err))
	}
}

// isAncestor reports whether a is b or one of b's ancestors.
func isAncestor(a, b node.Node) bool {
	for cur := b; cur != nil; {
		if cur.ID() == a.ID() {
			return true
		}
		p := cur.Parent()
		if p == nil {
			return false
		}
		cur = p
	}
	return false
}

// FreeAll frees every direct child of a group.
func (g *NodeGraph) FreeAll(groupID nodeid.ID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	grp, err := g.lookupGroup(groupID)
	if err != nil {
		return err
	}
	grp.FreeChildren()
	g.dirty = true
	return nil
}

// DeepFree frees every synth below a group and keeps the groups.
func (g *NodeGraph) DeepFree(groupID nodeid.ID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	grp, err := g.lookupGroup(groupID)
	if err != nil {
		return err
	}
	grp.FreeSynthsDeep()
	g.dirty = true
	return nil
}

// Pause excludes a node, and for a group its subtree, from dispatch.
func (g *NodeGraph) Pause(id nodeid.ID) error {
	return g.apply(id, node.Node.Pause)
}

// Resume undoes Pause.
func (g *NodeGraph) Resume(id nodeid.ID) error {
	return g.apply(id, node.Node.Resume)
}

// Set assigns a control on a synth, or on every synth below a group.
func (g *NodeGraph) Set(id nodeid.ID, control string, value float32) error {
	return g.apply(id, func(n node.Node) { n.Set(control, value) })
}

func (g *NodeGraph) apply(id nodeid.ID, f func(node.Node)) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.lookup(id)
	if err != nil {
		return err
	}
	f(n)
	return nil
}
