// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for file discovery, parsing, and translating `synth` and
// `group` blocks into the format-agnostic layout model, keeping the order in
// which blocks appear.
package hcl
