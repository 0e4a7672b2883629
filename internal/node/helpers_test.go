package node

import (
	"slices"
	"testing"

	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/queue"
	"github.com/stretchr/testify/require"
)

func childIDs(g Group) []nodeid.ID {
	var ids []nodeid.ID
	for n := range g.Children() {
		ids = append(ids, n.ID())
	}
	return ids
}

func mustAdd(t *testing.T, g Group, nodes ...Node) {
	t.Helper()
	for _, n := range nodes {
		require.NoError(t, g.AddChild(n))
	}
}

// compileIndexed compiles root, checks the queue invariants and indexes the
// items by synth id.
func compileIndexed(t *testing.T, root Group) (*queue.Queue, map[nodeid.ID]*queue.Item) {
	t.Helper()
	q := Compile(root)
	require.NoError(t, q.Validate())
	idx := make(map[nodeid.ID]*queue.Item, q.Len())
	for _, it := range q.Items() {
		_, dup := idx[it.Job().ID()]
		require.False(t, dup, "synth %s emitted twice", it.Job().ID())
		idx[it.Job().ID()] = it
	}
	return q, idx
}

func successorIDs(it *queue.Item) []nodeid.ID {
	ids := make([]nodeid.ID, 0, len(it.Successors()))
	for _, s := range it.Successors() {
		ids = append(ids, s.Job().ID())
	}
	slices.Sort(ids)
	return ids
}

func runnableIDs(q *queue.Queue) []nodeid.ID {
	ids := make([]nodeid.ID, 0, len(q.Runnable()))
	for _, it := range q.Runnable() {
		ids = append(ids, it.Job().ID())
	}
	slices.Sort(ids)
	return ids
}
