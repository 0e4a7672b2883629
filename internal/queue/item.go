package queue

import (
	"sync/atomic"

	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// Job is the unit of work an Item dispatches. Synths implement it.
type Job interface {
	ID() nodeid.ID
	// Paused reports whether the job must be skipped for this block. Skipped
	// items still release their successors.
	Paused() bool
	Run()
}

// Successors is the set of items that wait for a subtree to finish. The
// builder threads it through the recursion; it must not be mutated once
// handed to Add.
type Successors []*Item

// Item is one scheduled job together with its dependency bookkeeping.
type Item struct {
	job        Job
	successors Successors
	limit      int32

	// pending counts predecessors still outstanding in the current dispatch.
	pending atomic.Int32
}

// Job returns the scheduled job.
func (it *Item) Job() Job {
	return it.job
}

// Successors returns the items that depend on this one.
func (it *Item) Successors() Successors {
	return it.successors
}

// ActivationLimit is the number of predecessors this item waits for.
func (it *Item) ActivationLimit() int {
	return int(it.limit)
}

// Arm resets the pending counter to the activation limit. Dispatchers call it
// once per item before the block starts.
func (it *Item) Arm() {
	it.pending.Store(it.limit)
}

// Signal records the completion of one predecessor and reports whether the
// item just became runnable. Signalling an item more often than its limit is a
// programming error.
func (it *Item) Signal() bool {
	left := it.pending.Add(-1)
	if left < 0 {
		panic("queue: activation count underflow for node " + it.job.ID().String())
	}
	return left == 0
}
