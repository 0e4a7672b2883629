package node

import "errors"

var (
	// ErrAlreadyAttached is returned when inserting a node that still has a
	// parent. Nothing is mutated; the caller must detach it first.
	ErrAlreadyAttached = errors.New("node already has a parent")
	// ErrNotChild is returned when an operation names a node that is not a
	// direct child of the group.
	ErrNotChild = errors.New("node is not a child of this group")
	// ErrInvalidPosition is returned for a position a group cannot honour.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrAncestor is returned when a group would become its own descendant.
	ErrAncestor = errors.New("group cannot be placed inside its own subtree")
)
