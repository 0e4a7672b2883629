// Package yaml provides the YAML implementation of config.Loader.
//
// A layout file holds a single `nodes` list. Every entry has exactly one of
// the keys `synth` or `group`; groups carry their own `nodes` list:
//
//	nodes:
//	  - synth: {name: lead, def: saw, controls: {freq: 440}}
//	  - group:
//	      name: voices
//	      parallel: true
//	      nodes:
//	        - synth: {name: a, def: sine}
package yaml
