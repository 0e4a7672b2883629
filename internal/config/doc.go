// Package config defines the format-agnostic layout model: the synths and
// groups to create at startup, in tree order, along with the Loader interface
// implemented by the HCL and YAML packages.
//
// The `config.Model` is the single input of graph.Apply. Concrete loaders
// live in separate packages so that this one stays free of parser imports.
package config
