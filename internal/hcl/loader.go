package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/novagraph/internal/config"
	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/fsutil"
)

// Extension is the file extension the loader picks up in directories.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL layout loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and appends their nodes to one
// model, file by file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		nodes, err := l.decodeNodes(f.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		model.Nodes = append(model.Nodes, nodes...)
	}

	synths, groups := model.Counts()
	logger.Debug("HCL loading complete.", "files", len(files), "synths", synths, "groups", groups)
	return model, nil
}

// LoadBytes parses a single in-memory file. filename is only used in
// diagnostics.
func (l *Loader) LoadBytes(src []byte, filename string) (*config.Model, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	nodes, err := l.decodeNodes(f.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return &config.Model{Nodes: nodes}, nil
}

// decodeNodes reads the synth and group blocks of body in source order.
func (l *Loader) decodeNodes(body hcl.Body) ([]config.NodeSpec, error) {
	content, diags := body.Content(nodesSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	nodes := make([]config.NodeSpec, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		var (
			spec config.NodeSpec
			err  error
		)
		switch block.Type {
		case "synth":
			spec.Synth, err = l.translateSynth(block)
		case "group":
			spec.Group, err = l.translateGroup(block)
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, spec)
	}
	return nodes, nil
}
