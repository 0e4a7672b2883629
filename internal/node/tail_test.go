package node

import (
	"testing"

	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailNodes_Empty(t *testing.T) {
	assert.Equal(t, 0, NewSequentialGroup(1).TailNodes())
	assert.Equal(t, 0, NewParallelGroup(2).TailNodes())
}

func TestTailNodes_Sequential(t *testing.T) {
	t.Run("last synth is the tail", func(t *testing.T) {
		g := NewSequentialGroup(1)
		mustAdd(t, g, NewSynth(10, "a", nil), NewSynth(11, "b", nil))
		assert.Equal(t, 1, g.TailNodes())
	})

	t.Run("empty groups in tail position are skipped", func(t *testing.T) {
		g := NewSequentialGroup(1)
		nested := NewSequentialGroup(4)
		mustAdd(t, nested, NewParallelGroup(5))
		mustAdd(t, g, NewSynth(10, "a", nil), NewSequentialGroup(2), NewParallelGroup(3), nested)
		assert.Equal(t, 1, g.TailNodes())
	})

	t.Run("trailing parallel group reports its own count", func(t *testing.T) {
		g := NewSequentialGroup(1)
		p := NewParallelGroup(2)
		mustAdd(t, p, NewSynth(10, "a", nil), NewSynth(11, "b", nil), NewSynth(12, "c", nil))
		mustAdd(t, g, NewSynth(9, "x", nil), p, NewSequentialGroup(3))
		assert.Equal(t, 3, g.TailNodes())
	})

	t.Run("groups without synths report zero", func(t *testing.T) {
		g := NewSequentialGroup(1)
		mustAdd(t, g, NewParallelGroup(2), NewSequentialGroup(3))
		assert.Equal(t, 0, g.TailNodes())
	})
}

func TestTailNodes_Parallel(t *testing.T) {
	g := NewParallelGroup(1)
	inner := NewParallelGroup(2)
	seq := NewSequentialGroup(3)
	mustAdd(t, inner, NewSynth(20, "a", nil), NewSynth(21, "b", nil))
	mustAdd(t, seq, NewSynth(30, "c", nil), NewSynth(31, "d", nil))
	mustAdd(t, g, NewSynth(10, "x", nil), inner, seq, NewSequentialGroup(4))

	// 1 (synth) + 2 (inner) + 1 (seq) + 0 (empty)
	assert.Equal(t, 4, g.TailNodes())
}

func TestCompiler_TailMatchesTailNodes(t *testing.T) {
	// [a, P{ [], [b, P{}], P{c, [d, e]} }, [P{}, []]]
	root := NewSequentialGroup(1)
	par := NewParallelGroup(2)
	emptySeq := NewSequentialGroup(3)
	seqB := NewSequentialGroup(4)
	inner := NewParallelGroup(5)
	seqDE := NewSequentialGroup(6)
	trailing := NewSequentialGroup(7)
	mustAdd(t, seqB, NewSynth(11, "b", nil), NewParallelGroup(8))
	mustAdd(t, seqDE, NewSynth(13, "d", nil), NewSynth(14, "e", nil))
	mustAdd(t, inner, NewSynth(12, "c", nil), seqDE)
	mustAdd(t, par, emptySeq, seqB, inner)
	mustAdd(t, trailing, NewParallelGroup(9), NewSequentialGroup(15))
	mustAdd(t, root, NewSynth(10, "a", nil), par, trailing)

	c := newCompiler(queue.New(0))
	groups := []Group{root, par, emptySeq, seqB, inner, seqDE, trailing}
	for _, g := range groups {
		assert.Equal(t, g.TailNodes(), c.tail(g), "group %s", g.ID())
	}
	assert.Equal(t, 3, c.tail(par))
	assert.Equal(t, 3, c.tail(root), "trailing empty groups are skipped")
}

func TestFillQueue_DeepNesting(t *testing.T) {
	// Each level is [synth, <next level>, empty parallel group].
	const depth = 500
	root := NewSequentialGroup(1)
	level := root
	for i := range depth {
		next := NewSequentialGroup(nodeid.ID(10_000 + i))
		mustAdd(t, level, NewSynth(nodeid.ID(100+i), "s", nil), next, NewParallelGroup(nodeid.ID(20_000+i)))
		level = next
	}

	q, idx := compileIndexed(t, root)
	require.Equal(t, depth, q.Len())
	require.Len(t, q.Runnable(), 1)
	for i := range depth - 1 {
		it := idx[nodeid.ID(100+i)]
		require.Len(t, it.Successors(), 1)
		assert.Equal(t, nodeid.ID(101+i), it.Successors()[0].Job().ID())
	}
	assert.Empty(t, idx[nodeid.ID(100+depth-1)].Successors())
}
