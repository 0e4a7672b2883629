// internal/nodeid/types.go
package nodeid

import "strconv"

// ID identifies a synth or group. It is stable for the attached lifetime of
// the node it names.
type ID int32

const (
	// Root is the id of the top-level group that always exists.
	Root ID = 0
	// Auto requests that the node graph allocate a fresh id.
	Auto ID = -1
)

// IsAuto reports whether the id asks for allocation rather than naming a node.
func (id ID) IsAuto() bool {
	return id < 0
}

// String returns the decimal representation of the id.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
