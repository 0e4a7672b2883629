package node

import (
	"fmt"
	"sync/atomic"

	list "github.com/bahlo/generic-list-go"
	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// Kind distinguishes synths from groups.
type Kind uint8

const (
	// KindSynth is a leaf that runs one audio computation per block.
	KindSynth Kind = iota
	// KindGroup is a container of other nodes.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSynth:
		return "synth"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node is a synth or a group in the synthesis tree.
type Node interface {
	ID() nodeid.ID
	Kind() Kind
	IsSynth() bool
	IsGroup() bool

	// Parent returns the group holding the node, or nil when detached.
	Parent() Group
	// NextSibling and PreviousSibling return the adjacent node in the parent's
	// sequence, or nil at either end or when detached.
	NextSibling() Node
	PreviousSibling() Node

	Paused() bool
	Pause()
	Resume()
	// Set assigns a named control value. On a group it reaches every synth
	// in the subtree.
	Set(control string, value float32)

	RefCount() int
	AddRef()
	Release()
	// SetReleaseHook installs fn to run once the reference count drops to
	// zero.
	SetReleaseHook(fn func(Node))

	base() *nodeBase
}

// nodeBase holds what synths and groups have in common.
type nodeBase struct {
	id   nodeid.ID
	kind Kind
	self Node

	refs   atomic.Int32
	paused atomic.Bool

	// parent is a back-reference only; ownership lives in parent.children.
	parent *group
	// elem is the node's position marker inside parent.children.
	elem *list.Element[Node]

	onRelease func(Node)
}

func (b *nodeBase) init(id nodeid.ID, kind Kind, self Node) {
	b.id = id
	b.kind = kind
	b.self = self
	b.refs.Store(1)
}

func (b *nodeBase) base() *nodeBase { return b }

// ID returns the node id.
func (b *nodeBase) ID() nodeid.ID { return b.id }

// Kind returns whether the node is a synth or a group.
func (b *nodeBase) Kind() Kind { return b.kind }

// IsSynth reports whether the node is a synth.
func (b *nodeBase) IsSynth() bool { return b.kind == KindSynth }

// IsGroup reports whether the node is a group.
func (b *nodeBase) IsGroup() bool { return b.kind == KindGroup }

// Parent returns the owning group or nil.
func (b *nodeBase) Parent() Group {
	if b.parent == nil {
		return nil
	}
	return b.parent.outer()
}

// NextSibling returns the node after this one in its parent.
func (b *nodeBase) NextSibling() Node {
	if b.parent == nil {
		return nil
	}
	return b.parent.NextNode(b.self)
}

// PreviousSibling returns the node before this one in its parent.
func (b *nodeBase) PreviousSibling() Node {
	if b.parent == nil {
		return nil
	}
	return b.parent.PreviousNode(b.self)
}

// Paused reports whether the node is excluded from dispatch.
func (b *nodeBase) Paused() bool { return b.paused.Load() }

// Pause marks the node paused.
func (b *nodeBase) Pause() { b.paused.Store(true) }

// Resume clears the paused mark.
func (b *nodeBase) Resume() { b.paused.Store(false) }

// RefCount returns the current number of references.
func (b *nodeBase) RefCount() int { return int(b.refs.Load()) }

// AddRef takes an additional reference.
func (b *nodeBase) AddRef() { b.refs.Add(1) }

// Release drops a reference and disposes the node when none remain.
func (b *nodeBase) Release() {
	left := b.refs.Add(-1)
	if left < 0 {
		panic(fmt.Sprintf("node: reference count underflow for %s %s", b.kind, b.id))
	}
	if left == 0 {
		b.dispose()
	}
}

// SetReleaseHook installs the callback run on disposal.
func (b *nodeBase) SetReleaseHook(fn func(Node)) { b.onRelease = fn }

func (b *nodeBase) dispose() {
	if g, ok := b.self.(Group); ok {
		g.FreeChildren()
	}
	if b.onRelease != nil {
		b.onRelease(b.self)
	}
}
