package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/novagraph/internal/config"
	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateSynth converts a synth block into the agnostic model.
func (l *Loader) translateSynth(block *hcl.Block) (*config.SynthSpec, error) {
	var b synthBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
		return nil, diags
	}

	name := block.Labels[0]
	id, err := decodeID(b.ID)
	if err != nil {
		return nil, fmt.Errorf("synth %q: %w", name, err)
	}
	controls, err := decodeControls(b.Controls)
	if err != nil {
		return nil, fmt.Errorf("synth %q: %w", name, err)
	}

	return &config.SynthSpec{
		Name:     name,
		ID:       id,
		Def:      b.Def,
		Paused:   b.Paused,
		Controls: controls,
	}, nil
}

// translateGroup converts a group block, and its children, into the agnostic
// model.
func (l *Loader) translateGroup(block *hcl.Block) (*config.GroupSpec, error) {
	var b groupBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
		return nil, diags
	}

	name := block.Labels[0]
	id, err := decodeID(b.ID)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", name, err)
	}
	nodes, err := l.decodeNodes(b.Remain)
	if err != nil {
		return nil, err
	}

	return &config.GroupSpec{
		Name:     name,
		ID:       id,
		Parallel: b.Parallel,
		Paused:   b.Paused,
		Nodes:    nodes,
	}, nil
}

// decodeID accepts a number, or a string understood by nodeid.Parse. A
// missing id means nodeid.Auto.
func decodeID(expr hcl.Expression) (nodeid.ID, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, diags
	}
	if v.IsNull() {
		return nodeid.Auto, nil
	}
	if v.Type().Equals(cty.String) {
		return nodeid.Parse(v.AsString())
	}

	num, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("id: %w", err)
	}
	var id int32
	if err := gocty.FromCtyValue(num, &id); err != nil {
		return 0, fmt.Errorf("id: %w", err)
	}
	if id < 0 {
		return nodeid.Auto, nil
	}
	return nodeid.ID(id), nil
}

// decodeControls turns an object or map of numbers into control values.
func decodeControls(expr hcl.Expression) (map[string]float32, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if v.IsNull() {
		return nil, nil
	}

	m, err := convert.Convert(v, cty.Map(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}
	controls := make(map[string]float32, m.LengthInt())
	if err := gocty.FromCtyValue(m, &controls); err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}
	return controls, nil
}
