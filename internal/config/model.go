package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// ErrInvalidModel wraps every validation failure reported by Model.Validate.
var ErrInvalidModel = errors.New("invalid layout")

// Model is the unified representation of a layout. Nodes are placed under
// the root group in order.
type Model struct {
	Nodes []NodeSpec
}

// NodeSpec holds exactly one of Synth or Group.
type NodeSpec struct {
	Synth *SynthSpec
	Group *GroupSpec
}

// SynthSpec describes a synth to create.
type SynthSpec struct {
	Name     string
	ID       nodeid.ID
	Def      string
	Paused   bool
	Controls map[string]float32
}

// GroupSpec describes a group and its children.
type GroupSpec struct {
	Name     string
	ID       nodeid.ID
	Parallel bool
	Paused   bool
	Nodes    []NodeSpec
}

// Name returns the label of whichever spec is set.
func (n NodeSpec) Name() string {
	switch {
	case n.Synth != nil:
		return n.Synth.Name
	case n.Group != nil:
		return n.Group.Name
	default:
		return ""
	}
}

// Counts returns the number of synths and groups in the model.
func (m *Model) Counts() (synths, groups int) {
	var walk func([]NodeSpec)
	walk = func(nodes []NodeSpec) {
		for _, n := range nodes {
			switch {
			case n.Synth != nil:
				synths++
			case n.Group != nil:
				groups++
				walk(n.Group.Nodes)
			}
		}
	}
	walk(m.Nodes)
	return synths, groups
}

// Validate checks the model for problems a loader cannot catch on its own:
// specs with neither or both halves set, synths without a definition, and
// explicit ids used twice or claiming the root.
func (m *Model) Validate() error {
	seen := make(map[nodeid.ID]string)
	claim := func(id nodeid.ID, name string) error {
		if id.IsAuto() {
			return nil
		}
		if id == nodeid.Root {
			return fmt.Errorf("%w: %q uses the root id", ErrInvalidModel, name)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: id %s used by both %q and %q", ErrInvalidModel, id, prev, name)
		}
		seen[id] = name
		return nil
	}

	var walk func(path string, nodes []NodeSpec) error
	walk = func(path string, nodes []NodeSpec) error {
		for i, n := range nodes {
			at := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case n.Synth != nil && n.Group != nil:
				return fmt.Errorf("%w: %s is both a synth and a group", ErrInvalidModel, at)
			case n.Synth != nil:
				if n.Synth.Def == "" {
					return fmt.Errorf("%w: synth %q at %s has no def", ErrInvalidModel, n.Synth.Name, at)
				}
				if err := claim(n.Synth.ID, n.Synth.Name); err != nil {
					return err
				}
			case n.Group != nil:
				if err := claim(n.Group.ID, n.Group.Name); err != nil {
					return err
				}
				if err := walk(at+"."+n.Group.Name, n.Group.Nodes); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: %s is empty", ErrInvalidModel, at)
			}
		}
		return nil
	}
	return walk("nodes", m.Nodes)
}
