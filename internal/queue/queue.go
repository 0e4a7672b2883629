package queue

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
)

var (
	// ErrLimitMismatch is returned by Validate when an item's activation limit
	// differs from the number of items that list it as a successor.
	ErrLimitMismatch = errors.New("activation limit does not match predecessor count")
	// ErrCycle is returned by Validate when the successor links form a cycle.
	ErrCycle = errors.New("execution queue contains a cycle")
)

// Queue is the compiled plan for one block.
type Queue struct {
	id       xid.ID
	items    []*Item
	runnable []*Item
}

// New creates an empty queue with room for capacity items.
func New(capacity int) *Queue {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue{
		id:    xid.New(),
		items: make([]*Item, 0, capacity),
	}
}

// ID identifies the compile pass that produced the queue.
func (q *Queue) ID() xid.ID {
	return q.id
}

// Add appends an item for job. successors are the items that run after it and
// limit is the number of predecessors it waits for.
func (q *Queue) Add(job Job, successors Successors, limit int) *Item {
	if limit < 0 {
		panic(fmt.Sprintf("queue: negative activation limit %d for node %s", limit, job.ID()))
	}
	it := &Item{job: job, successors: successors, limit: int32(limit)}
	q.items = append(q.items, it)
	if limit == 0 {
		q.runnable = append(q.runnable, it)
	}
	return it
}

// Len returns the number of items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Empty reports whether the queue has no items.
func (q *Queue) Empty() bool {
	return len(q.items) == 0
}

// Items returns all items in the order the builder emitted them.
func (q *Queue) Items() []*Item {
	return q.items
}

// Runnable returns the items with an activation limit of zero.
func (q *Queue) Runnable() []*Item {
	return q.runnable
}

// Edges returns the total number of successor links.
func (q *Queue) Edges() int {
	n := 0
	for _, it := range q.items {
		n += len(it.successors)
	}
	return n
}

// Validate checks the structural invariants of a compiled queue: each item's
// activation limit equals its number of predecessors and the graph is
// acyclic. Successors pointing outside the queue are reported as well.
func (q *Queue) Validate() error {
	index := make(map[*Item]int, len(q.items))
	for i, it := range q.items {
		index[it] = i
	}

	indegree := make([]int, len(q.items))
	for _, it := range q.items {
		for _, succ := range it.successors {
			j, ok := index[succ]
			if !ok {
				return fmt.Errorf("node %s has a successor outside the queue", it.job.ID())
			}
			indegree[j]++
		}
	}
	for i, it := range q.items {
		if int(it.limit) != indegree[i] {
			return fmt.Errorf("%w: node %s has limit %d and %d predecessors",
				ErrLimitMismatch, it.job.ID(), it.limit, indegree[i])
		}
	}

	// Kahn's algorithm; every item must drain.
	remaining := append([]int(nil), indegree...)
	frontier := make([]int, 0, len(q.runnable))
	for i := range q.items {
		if remaining[i] == 0 {
			frontier = append(frontier, i)
		}
	}
	visited := 0
	for len(frontier) > 0 {
		i := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		visited++
		for _, succ := range q.items[i].successors {
			j := index[succ]
			remaining[j]--
			if remaining[j] == 0 {
				frontier = append(frontier, j)
			}
		}
	}
	if visited != len(q.items) {
		return ErrCycle
	}
	return nil
}
