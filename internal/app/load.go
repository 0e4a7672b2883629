package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/novagraph/internal/config"
	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/hcl"
	"github.com/specialistvlad/novagraph/internal/yaml"
)

// layoutLoader picks a format loader per path: by extension for files, and
// HCL followed by YAML for directories.
type layoutLoader struct {
	hcl  config.Loader
	yaml config.Loader
}

func newLayoutLoader() *layoutLoader {
	return &layoutLoader{hcl: hcl.NewLoader(), yaml: yaml.NewLoader()}
}

func (l *layoutLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		var loaders []config.Loader
		switch ext := filepath.Ext(path); {
		case info.IsDir():
			loaders = []config.Loader{l.hcl, l.yaml}
		case ext == hcl.Extension:
			loaders = []config.Loader{l.hcl}
		case ext == ".yaml" || ext == ".yml":
			loaders = []config.Loader{l.yaml}
		default:
			return nil, fmt.Errorf("unsupported layout file %s", path)
		}

		for _, loader := range loaders {
			m, err := loader.Load(ctx, path)
			if err != nil {
				return nil, err
			}
			model.Nodes = append(model.Nodes, m.Nodes...)
		}
		logger.Debug("Layout path loaded.", "path", path)
	}
	return model, nil
}
