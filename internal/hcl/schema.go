package hcl

import "github.com/hashicorp/hcl/v2"

// nodesSchema matches the node blocks allowed at the top level of a file and
// inside a group.
var nodesSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "synth", LabelNames: []string{"name"}},
		{Type: "group", LabelNames: []string{"name"}},
	},
}

// synthBlock is the body of a `synth "<name>" {}` block.
type synthBlock struct {
	ID       hcl.Expression `hcl:"id,optional"`
	Def      string         `hcl:"def"`
	Paused   bool           `hcl:"paused,optional"`
	Controls hcl.Expression `hcl:"controls,optional"`
}

// groupBlock is the body of a `group "<name>" {}` block. Nested node blocks
// stay in Remain so they can be read in source order.
type groupBlock struct {
	ID       hcl.Expression `hcl:"id,optional"`
	Parallel bool           `hcl:"parallel,optional"`
	Paused   bool           `hcl:"paused,optional"`
	Remain   hcl.Body       `hcl:",remain"`
}
