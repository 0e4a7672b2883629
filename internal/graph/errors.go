package graph

import "errors"

var (
	// ErrNodeNotFound is returned when an id does not name a live node.
	ErrNodeNotFound = errors.New("node not found")
	// ErrNotGroup is returned when a group operation names a synth.
	ErrNotGroup = errors.New("node is not a group")
	// ErrRootImmutable is returned for edits that would free, move or
	// position something relative to the root group.
	ErrRootImmutable = errors.New("root group cannot be changed")
	// ErrCycle is returned when a group would be moved into its own subtree.
	ErrCycle = errors.New("group cannot be moved into its own subtree")
)
