package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/novagraph/internal/config"
	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/node"
	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// Apply creates every node of a layout at the tail of the root group, in
// order. Nodes created before a failure stay in place.
func (g *NodeGraph) Apply(ctx context.Context, m *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	if err := m.Validate(); err != nil {
		return err
	}
	if err := g.applyNodes(nodeid.Root, m.Nodes); err != nil {
		return err
	}

	synths, groups := m.Counts()
	logger.Debug("Layout applied.", "synths", synths, "groups", groups)
	return nil
}

func (g *NodeGraph) applyNodes(parent nodeid.ID, nodes []config.NodeSpec) error {
	for _, ns := range nodes {
		var (
			created node.Node
			err     error
		)
		switch {
		case ns.Synth != nil:
			created, err = g.applySynth(parent, ns.Synth)
		case ns.Group != nil:
			created, err = g.AddGroup(ns.Group.ID, ns.Group.Parallel, AtTail(parent))
			if err == nil {
				err = g.applyNodes(created.ID(), ns.Group.Nodes)
			}
		}
		if err != nil {
			return fmt.Errorf("apply %q: %w", ns.Name(), err)
		}
		if (ns.Synth != nil && ns.Synth.Paused) || (ns.Group != nil && ns.Group.Paused) {
			if err := g.Pause(created.ID()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *NodeGraph) applySynth(parent nodeid.ID, ss *config.SynthSpec) (*node.Synth, error) {
	var unit node.Unit
	if g.units != nil {
		unit = g.units(ss.Def)
	}
	s, err := g.AddSynth(ss.ID, ss.Def, unit, AtTail(parent))
	if err != nil {
		return nil, err
	}
	for control, value := range ss.Controls {
		if err := g.Set(s.ID(), control, value); err != nil {
			return nil, err
		}
	}
	return s, nil
}
