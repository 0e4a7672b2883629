// Package nodestore provides slot storage for live nodes, addressed either by
// node id or by a generation-checked handle.
//
// # Why Node Store Exists
//
// Groups hold their children directly, but the control layer refers to nodes
// by id and may keep a reference around after the node is gone. The store maps
// ids to slots and hands out Handles that pair a slot index with the slot's
// generation. Freeing a node bumps the generation, so a stale Handle resolves
// to "not found" instead of to whatever node reuses the slot.
//
// # Lifecycle
//
//  1. Insert registers a node and returns its Handle.
//  2. Get and Find resolve handles and ids while the node is live.
//  3. Remove retires the slot; the index goes on the free list for reuse.
//
// # Thread-Safety
//
// All methods are safe for concurrent use. Reads take a shared lock so that
// lookups from a dispatcher or a health endpoint do not block each other.
package nodestore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/novagraph/internal/nodeid"
)

var (
	// ErrDuplicateID is returned by Insert when the id is already live.
	ErrDuplicateID = errors.New("node id already in use")
	// ErrStaleHandle is returned when a handle no longer names a live slot.
	ErrStaleHandle = errors.New("stale node handle")
)

// Identified is anything with a node id.
type Identified interface {
	ID() nodeid.ID
}

// Handle names a slot at a specific generation.
type Handle struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether h was never issued. Generations start at 1.
func (h Handle) IsZero() bool {
	return h.Gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.Index, h.Gen)
}

type slot[T Identified] struct {
	gen   uint32
	live  bool
	value T
}

// Arena stores values of T in reusable slots.
type Arena[T Identified] struct {
	mu    sync.RWMutex
	slots []slot[T]
	free  []uint32
	byID  map[nodeid.ID]uint32
}

// New creates an empty arena.
func New[T Identified]() *Arena[T] {
	return &Arena[T]{
		byID: make(map[nodeid.ID]uint32),
	}
}

// Insert registers v under v.ID().
func (a *Arena[T]) Insert(v T) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := v.ID()
	if _, exists := a.byID[id]; exists {
		return Handle{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[idx]
	s.gen++
	s.live = true
	s.value = v
	a.byID[id] = idx
	return Handle{Index: idx, Gen: s.gen}, nil
}

// Get resolves a handle.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var zero T
	if int(h.Index) >= len(a.slots) {
		return zero, false
	}
	s := a.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return zero, false
	}
	return s.value, true
}

// Find resolves an id to its value and current handle.
func (a *Arena[T]) Find(id nodeid.ID) (T, Handle, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var zero T
	idx, ok := a.byID[id]
	if !ok {
		return zero, Handle{}, false
	}
	s := a.slots[idx]
	return s.value, Handle{Index: idx, Gen: s.gen}, true
}

// Contains reports whether id is live.
func (a *Arena[T]) Contains(id nodeid.ID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.byID[id]
	return ok
}

// Remove retires the slot named by h.
func (a *Arena[T]) Remove(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if int(h.Index) >= len(a.slots) {
		return fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	s := &a.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}

	delete(a.byID, s.value.ID())
	var zero T
	s.value = zero
	s.live = false
	a.free = append(a.free, h.Index)
	return nil
}

// RemoveID retires the slot holding id, if any.
func (a *Arena[T]) RemoveID(id nodeid.ID) bool {
	_, h, ok := a.Find(id)
	if !ok {
		return false
	}
	return a.Remove(h) == nil
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.byID)
}
