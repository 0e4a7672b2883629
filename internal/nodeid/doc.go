// internal/nodeid/doc.go

/*
Package nodeid provides the identity space for nodes in the synthesis tree.

Node ids are small signed integers, unique within one server. The value 0 is
reserved for the root group and negative values ask the server to allocate an
id on the caller's behalf. The package centralizes parsing, formatting and
allocation so that every layer (layout loaders, the node graph, the CLI) agrees
on the same rules.
*/
package nodeid
