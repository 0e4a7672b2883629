// internal/nodeid/allocator.go
package nodeid

import "sync/atomic"

// DefaultBase is the first id handed out by a zero-configured Allocator. Ids
// below it are left to clients that pick their own.
const DefaultBase ID = 1000

// Allocator hands out monotonically increasing ids. It is safe for concurrent
// use. Uniqueness against ids chosen by clients is the caller's concern; the
// node graph retries when an allocated id is already taken.
type Allocator struct {
	next atomic.Int32
}

// NewAllocator returns an allocator whose first id is base.
func NewAllocator(base ID) *Allocator {
	if base <= Root {
		base = DefaultBase
	}
	a := &Allocator{}
	a.next.Store(int32(base))
	return a
}

// Next returns a fresh id.
func (a *Allocator) Next() ID {
	id := a.next.Add(1) - 1
	if id <= int32(Root) {
		panic("nodeid: allocator exhausted the id space")
	}
	return ID(id)
}
