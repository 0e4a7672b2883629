package testutil

import (
	"testing"

	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/queue"
	"github.com/stretchr/testify/require"
)

// AssertRanBefore checks that the first run of first finished before the
// first run of second started.
func AssertRanBefore(t *testing.T, r *Recorder, first, second nodeid.ID) {
	t.Helper()
	a, b := r.Records(first), r.Records(second)
	require.NotEmpty(t, a, "synth %s never ran", first)
	require.NotEmpty(t, b, "synth %s never ran", second)
	require.False(t, b[0].Start.Before(a[0].End),
		"synth %s started before synth %s finished", second, first)
}

// AssertOverlapped checks that the first runs of two synths were in flight
// at the same time.
func AssertOverlapped(t *testing.T, r *Recorder, x, y nodeid.ID) {
	t.Helper()
	a, b := r.Records(x), r.Records(y)
	require.NotEmpty(t, a, "synth %s never ran", x)
	require.NotEmpty(t, b, "synth %s never ran", y)
	require.True(t, a[0].Start.Before(b[0].End) && b[0].Start.Before(a[0].End),
		"synths %s and %s did not run concurrently", x, y)
}

// AssertDependenciesRespected checks every successor link of q against the
// recorded runs.
func AssertDependenciesRespected(t *testing.T, r *Recorder, q *queue.Queue) {
	t.Helper()
	for _, it := range q.Items() {
		for _, next := range it.Successors() {
			AssertRanBefore(t, r, it.Job().ID(), next.Job().ID())
		}
	}
}
