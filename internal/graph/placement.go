package graph

import (
	"fmt"

	"github.com/specialistvlad/novagraph/internal/node"
	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// Placement says where a node goes: relative to the node named by Target.
// For Head and Tail the target is the parent group; for Before, After and
// Replace it is the sibling.
type Placement struct {
	Target   nodeid.ID
	Position node.Position
}

// AtHead places a node first in the group.
func AtHead(group nodeid.ID) Placement { return Placement{Target: group, Position: node.Head} }

// AtTail places a node last in the group.
func AtTail(group nodeid.ID) Placement { return Placement{Target: group, Position: node.Tail} }

// Before places a node immediately before the sibling.
func Before(sibling nodeid.ID) Placement { return Placement{Target: sibling, Position: node.Before} }

// After places a node immediately after the sibling.
func After(sibling nodeid.ID) Placement { return Placement{Target: sibling, Position: node.After} }

// Replacing places a node where the sibling is and frees the sibling.
func Replacing(sibling nodeid.ID) Placement {
	return Placement{Target: sibling, Position: node.Replace}
}

func (p Placement) String() string {
	return fmt.Sprintf("%s %s", p.Position, p.Target)
}
