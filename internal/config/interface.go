package config

import "context"

// Loader is the interface for a format-specific layout loader.
type Loader interface {
	// Load reads every layout file under the given paths, in order, and
	// merges them into one model. Nodes from later files follow nodes from
	// earlier ones.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
