package graph

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/novagraph/internal/node"
	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/nodestore"
	"github.com/specialistvlad/novagraph/internal/queue"
)

// UnitFactory returns the audio computation for a synth definition, or nil
// for a silent synth.
type UnitFactory func(def string) node.Unit

// Option configures a NodeGraph.
type Option func(*NodeGraph)

// WithAllocator replaces the default id allocator.
func WithAllocator(a *nodeid.Allocator) Option {
	return func(g *NodeGraph) { g.ids = a }
}

// WithUnits sets the factory Apply uses to resolve synth definitions.
func WithUnits(f UnitFactory) Option {
	return func(g *NodeGraph) { g.units = f }
}

// WithValidation makes Compile check every new plan with queue.Validate.
func WithValidation(on bool) Option {
	return func(g *NodeGraph) { g.validate = on }
}

// NodeGraph is the id-addressed synthesis tree.
type NodeGraph struct {
	mu sync.Mutex

	root  *node.SequentialGroup
	nodes *nodestore.Arena[node.Node]
	ids   *nodeid.Allocator
	units UnitFactory

	validate bool
	dirty    bool
	plan     *queue.Queue
}

// New creates a graph holding only the root group.
func New(opts ...Option) *NodeGraph {
	g := &NodeGraph{
		nodes: nodestore.New[node.Node](),
		ids:   nodeid.NewAllocator(nodeid.DefaultBase),
		dirty: true,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.root = node.NewSequentialGroup(nodeid.Root)
	if _, err := g.nodes.Insert(g.root); err != nil {
		// The arena is empty at this point.
		panic(err)
	}
	return g
}

// Root returns the root group. Callers must go through NodeGraph to edit it.
func (g *NodeGraph) Root() node.Group {
	return g.root
}

// Find returns the live node with the given id.
func (g *NodeGraph) Find(id nodeid.ID) (node.Node, bool) {
	n, err := g.lookup(id)
	return n, err == nil
}

// Handle returns a generation-checked handle for id. Unlike a node pointer,
// it stops resolving once the node is freed.
func (g *NodeGraph) Handle(id nodeid.ID) (nodestore.Handle, bool) {
	_, h, ok := g.nodes.Find(id)
	return h, ok
}

// Resolve returns the node behind a handle if it is still live.
func (g *NodeGraph) Resolve(h nodestore.Handle) (node.Node, bool) {
	return g.nodes.Get(h)
}

// Len returns the number of live nodes, root included.
func (g *NodeGraph) Len() int {
	return g.nodes.Len()
}

// Counts returns the number of synths and groups below the root.
func (g *NodeGraph) Counts() (synths, groups int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.root.ChildCountDeep()
}

// lookup resolves id to a node that is part of the tree.
func (g *NodeGraph) lookup(id nodeid.ID) (node.Node, error) {
	n, _, ok := g.nodes.Find(id)
	if !ok || (id != nodeid.Root && n.Parent() == nil) {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

func (g *NodeGraph) lookupGroup(id nodeid.ID) (node.Group, error) {
	n, err := g.lookup(id)
	if err != nil {
		return nil, err
	}
	grp, ok := n.(node.Group)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotGroup, id)
	}
	return grp, nil
}

// claim turns nodeid.Auto into a fresh id. Explicit ids are checked by the
// arena on insert.
func (g *NodeGraph) claim(id nodeid.ID) nodeid.ID {
	if !id.IsAuto() {
		return id
	}
	for {
		next := g.ids.Next()
		if !g.nodes.Contains(next) {
			return next
		}
	}
}

// forget is every node's release hook.
func (g *NodeGraph) forget(n node.Node) {
	if live, h, ok := g.nodes.Find(n.ID()); ok && live == n {
		_ = g.nodes.Remove(h)
	}
}
