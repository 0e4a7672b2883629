package node

import "fmt"

// Position names where a node goes relative to a target.
type Position uint8

const (
	// Head inserts as the first child of the target group.
	Head Position = iota
	// Tail inserts as the last child of the target group.
	Tail
	// Before inserts immediately before the target sibling.
	Before
	// After inserts immediately after the target sibling.
	After
	// Replace swaps the target out. Groups do not handle it directly; the
	// node graph turns it into After followed by freeing the target.
	Replace
)

func (p Position) String() string {
	switch p {
	case Head:
		return "head"
	case Tail:
		return "tail"
	case Before:
		return "before"
	case After:
		return "after"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Position(%d)", uint8(p))
	}
}

// ParsePosition converts a name produced by Position.String back.
func ParsePosition(s string) (Position, error) {
	for p := Head; p <= Replace; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
}

// Constraint pairs a position with its reference node. For Head and Tail the
// target is the group itself (or nil); for Before and After it is a sibling.
type Constraint struct {
	Target   Node
	Position Position
}
