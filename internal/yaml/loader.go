package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/novagraph/internal/config"
	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/fsutil"
	"github.com/specialistvlad/novagraph/internal/nodeid"
	yamlv2 "gopkg.in/yaml.v2"
)

// Extensions are the file extensions the loader picks up in directories.
var Extensions = []string{".yaml", ".yml"}

type file struct {
	Nodes []node `yaml:"nodes"`
}

type node struct {
	Synth *synth `yaml:"synth"`
	Group *group `yaml:"group"`
}

type synth struct {
	Name     string             `yaml:"name"`
	ID       string             `yaml:"id"`
	Def      string             `yaml:"def"`
	Paused   bool               `yaml:"paused"`
	Controls map[string]float32 `yaml:"controls"`
}

type group struct {
	Name     string `yaml:"name"`
	ID       string `yaml:"id"`
	Parallel bool   `yaml:"parallel"`
	Paused   bool   `yaml:"paused"`
	Nodes    []node `yaml:"nodes"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML layout loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML file under paths and appends their nodes to one
// model, file by file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}

	model := &config.Model{}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		m, err := l.LoadBytes(data, path)
		if err != nil {
			return nil, err
		}
		model.Nodes = append(model.Nodes, m.Nodes...)
	}

	synths, groups := model.Counts()
	logger.Debug("YAML loading complete.", "files", len(files), "synths", synths, "groups", groups)
	return model, nil
}

// LoadBytes decodes a single in-memory file. Unknown keys are rejected.
func (l *Loader) LoadBytes(data []byte, filename string) (*config.Model, error) {
	var f file
	if err := yamlv2.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	nodes, err := translateNodes(f.Nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	return &config.Model{Nodes: nodes}, nil
}

func translateNodes(in []node) ([]config.NodeSpec, error) {
	out := make([]config.NodeSpec, 0, len(in))
	for i, n := range in {
		var spec config.NodeSpec
		if n.Synth != nil {
			id, err := nodeid.Parse(n.Synth.ID)
			if err != nil {
				return nil, fmt.Errorf("synth %q: %w", n.Synth.Name, err)
			}
			spec.Synth = &config.SynthSpec{
				Name:     n.Synth.Name,
				ID:       id,
				Def:      n.Synth.Def,
				Paused:   n.Synth.Paused,
				Controls: n.Synth.Controls,
			}
		}
		if n.Group != nil {
			id, err := nodeid.Parse(n.Group.ID)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", n.Group.Name, err)
			}
			children, err := translateNodes(n.Group.Nodes)
			if err != nil {
				return nil, err
			}
			spec.Group = &config.GroupSpec{
				Name:     n.Group.Name,
				ID:       id,
				Parallel: n.Group.Parallel,
				Paused:   n.Group.Paused,
				Nodes:    children,
			}
		}
		if spec.Synth == nil && spec.Group == nil {
			return nil, fmt.Errorf("entry %d has neither synth nor group", i)
		}
		out = append(out, spec)
	}
	return out, nil
}
