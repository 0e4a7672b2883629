package node

import (
	"testing"

	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChild(t *testing.T) {
	t.Run("attaches and counts", func(t *testing.T) {
		g := NewSequentialGroup(1)
		s := NewSynth(10, "sine", nil)
		sub := NewParallelGroup(2)

		require.NoError(t, g.AddChild(s))
		require.NoError(t, g.AddChild(sub))

		assert.Equal(t, 2, g.ChildCount())
		assert.Equal(t, []nodeid.ID{10, 2}, childIDs(g))
		assert.True(t, g.HasChild(s))
		assert.Equal(t, Group(g), s.Parent())
		assert.Equal(t, 2, s.RefCount(), "caller reference plus the group's")
	})

	t.Run("rejects a node that already has a parent", func(t *testing.T) {
		g1 := NewSequentialGroup(1)
		g2 := NewParallelGroup(2)
		s := NewSynth(10, "sine", nil)
		require.NoError(t, g1.AddChild(s))

		err := g2.AddChild(s)
		assert.ErrorIs(t, err, ErrAlreadyAttached)
		assert.Equal(t, 0, g2.ChildCount())
		assert.Equal(t, Group(g1), s.Parent())
		assert.Equal(t, 2, s.RefCount())

		assert.ErrorIs(t, g1.AddChild(s), ErrAlreadyAttached)
		assert.Equal(t, 1, g1.ChildCount())
	})

	t.Run("rejects placing a group inside its own subtree", func(t *testing.T) {
		outer := NewSequentialGroup(1)
		inner := NewParallelGroup(2)
		require.NoError(t, outer.AddChild(inner))

		assert.ErrorIs(t, inner.AddChild(outer), ErrAncestor)
		assert.ErrorIs(t, outer.AddChild(outer), ErrAncestor)
		assert.Nil(t, outer.Parent())
	})
}

func TestRemoveChild(t *testing.T) {
	g := NewSequentialGroup(1)
	a := NewSynth(10, "a", nil)
	b := NewSynth(11, "b", nil)
	mustAdd(t, g, a, b)

	require.NoError(t, g.RemoveChild(a))
	assert.False(t, g.HasChild(a))
	assert.Nil(t, a.Parent())
	assert.Equal(t, 1, a.RefCount())
	assert.Equal(t, []nodeid.ID{11}, childIDs(g))

	err := g.RemoveChild(a)
	assert.ErrorIs(t, err, ErrNotChild)

	other := NewSequentialGroup(2)
	assert.ErrorIs(t, other.RemoveChild(b), ErrNotChild)
	assert.Equal(t, 1, g.ChildCount())
}

func TestRemoveChild_ReleasesLastReference(t *testing.T) {
	g := NewSequentialGroup(1)
	s := NewSynth(10, "a", nil)
	var released []nodeid.ID
	s.SetReleaseHook(func(n Node) { released = append(released, n.ID()) })

	mustAdd(t, g, s)
	s.Release() // drop the caller reference; the group keeps it alive
	assert.Empty(t, released)

	require.NoError(t, g.RemoveChild(s))
	assert.Equal(t, []nodeid.ID{10}, released)
	assert.Panics(t, func() { s.Release() })
}

func TestReleasingGroupFreesChildren(t *testing.T) {
	g := NewSequentialGroup(1)
	sub := NewParallelGroup(2)
	s := NewSynth(10, "a", nil)
	var released []nodeid.ID
	hook := func(n Node) { released = append(released, n.ID()) }
	for _, n := range []Node{g, sub, s} {
		n.SetReleaseHook(hook)
	}
	mustAdd(t, g, sub)
	mustAdd(t, sub, s)
	sub.Release()
	s.Release()

	g.Release()
	assert.ElementsMatch(t, []nodeid.ID{1, 2, 10}, released)
	assert.Nil(t, s.Parent())
}

func TestHasChild(t *testing.T) {
	g := NewParallelGroup(1)
	s := NewSynth(10, "a", nil)
	assert.False(t, g.HasChild(s))
	assert.False(t, g.HasChild(nil))
	mustAdd(t, g, s)
	assert.True(t, g.HasChild(s))
}

func TestNeighbours(t *testing.T) {
	for _, g := range []Group{NewSequentialGroup(1), NewParallelGroup(1)} {
		t.Run(kindName(g), func(t *testing.T) {
			a := NewSynth(10, "a", nil)
			b := NewSynth(11, "b", nil)
			c := NewSynth(12, "c", nil)
			mustAdd(t, g, a, b, c)

			assert.Nil(t, g.PreviousNode(a))
			assert.Equal(t, Node(b), g.NextNode(a))
			assert.Equal(t, Node(a), g.PreviousNode(b))
			assert.Equal(t, Node(c), g.NextNode(b))
			assert.Nil(t, g.NextNode(c))

			assert.Equal(t, Node(b), a.NextSibling())
			assert.Equal(t, Node(b), c.PreviousSibling())
			assert.Equal(t, Node(a), g.Head())
			assert.Equal(t, Node(c), g.Tail())

			stranger := NewSynth(99, "x", nil)
			assert.Nil(t, g.NextNode(stranger))
			assert.Nil(t, stranger.NextSibling())
		})
	}
}

func kindName(g Group) string {
	if g.IsParallel() {
		return "parallel"
	}
	return "sequential"
}

func TestChildCounts(t *testing.T) {
	root := NewSequentialGroup(1)
	p := NewParallelGroup(2)
	s := NewSequentialGroup(3)
	empty := NewSequentialGroup(4)
	mustAdd(t, root, NewSynth(10, "a", nil), p, empty)
	mustAdd(t, p, NewSynth(11, "b", nil), s)
	mustAdd(t, s, NewSynth(12, "c", nil), NewSynth(13, "d", nil))

	assert.Equal(t, 3, root.ChildCount())
	synths, groups := root.ChildCountDeep()
	assert.Equal(t, 4, synths)
	assert.Equal(t, 3, groups)

	synths, groups = p.ChildCountDeep()
	assert.Equal(t, 3, synths)
	assert.Equal(t, 1, groups)

	assert.True(t, root.HasSynthChildren())
	assert.False(t, empty.HasSynthChildren())
	assert.True(t, empty.Empty())
}

func TestChildCount_RoundTrip(t *testing.T) {
	g := NewSequentialGroup(1)
	var attached []Node
	for i := range 10 {
		var n Node
		if i%3 == 0 {
			n = NewParallelGroup(nodeid.ID(100 + i))
		} else {
			n = NewSynth(nodeid.ID(100+i), "s", nil)
		}
		mustAdd(t, g, n)
		attached = append(attached, n)
	}
	for i, n := range attached {
		if i%2 == 0 {
			require.NoError(t, g.RemoveChild(n))
		}
	}

	want := 0
	for range g.Children() {
		want++
	}
	assert.Equal(t, want, g.ChildCount())
	assert.Equal(t, 5, g.ChildCount())
}

func TestFreeChildren(t *testing.T) {
	g := NewSequentialGroup(1)
	a := NewSynth(10, "a", nil)
	sub := NewParallelGroup(2)
	mustAdd(t, g, a, sub)

	g.FreeChildren()
	assert.Equal(t, 0, g.ChildCount())
	assert.True(t, g.Empty())
	assert.Nil(t, a.Parent())
	assert.Nil(t, sub.Parent())
	assert.Equal(t, 1, a.RefCount())
}

func TestFreeSynthsDeep(t *testing.T) {
	root := NewSequentialGroup(1)
	p := NewParallelGroup(2)
	s := NewSequentialGroup(3)
	mustAdd(t, root, NewSynth(10, "a", nil), p, NewSynth(11, "b", nil))
	mustAdd(t, p, NewSynth(12, "c", nil), s)
	mustAdd(t, s, NewSynth(13, "d", nil))

	root.FreeSynthsDeep()

	assert.False(t, root.HasSynthChildren())
	synths, groups := root.ChildCountDeep()
	assert.Equal(t, 0, synths)
	assert.Equal(t, 2, groups)
	assert.Equal(t, []nodeid.ID{2}, childIDs(root))
	assert.Equal(t, []nodeid.ID{3}, childIDs(p))
}

func TestApplyOnChildren_Order(t *testing.T) {
	g := NewSequentialGroup(1)
	mustAdd(t, g, NewSynth(3, "a", nil), NewSynth(1, "b", nil), NewSynth(2, "c", nil))

	var seen []nodeid.ID
	g.ApplyOnChildren(func(n Node) { seen = append(seen, n.ID()) })
	assert.Equal(t, []nodeid.ID{3, 1, 2}, seen)

	// f may detach the node it was handed.
	g.ApplyOnChildren(func(n Node) { require.NoError(t, g.RemoveChild(n)) })
	assert.True(t, g.Empty())
}

func TestPauseResume(t *testing.T) {
	root := NewSequentialGroup(1)
	p := NewParallelGroup(2)
	a := NewSynth(10, "a", nil)
	b := NewSynth(11, "b", nil)
	mustAdd(t, root, a, p)
	mustAdd(t, p, b)

	p.Pause()
	assert.True(t, p.Paused())
	assert.True(t, b.Paused())
	assert.False(t, a.Paused())
	assert.False(t, root.Paused())

	root.Pause()
	assert.True(t, a.Paused())

	root.Resume()
	for _, n := range []Node{root, p, a, b} {
		assert.False(t, n.Paused(), "node %s", n.ID())
	}
	assert.Equal(t, 2, root.ChildCount(), "pausing never detaches")
	assert.Equal(t, 1, p.ChildCount())
}

func TestPause_InheritedByLateChildren(t *testing.T) {
	root := NewSequentialGroup(1)
	grp := NewSequentialGroup(2)
	first := NewSynth(10, "a", nil)
	mustAdd(t, root, grp)
	mustAdd(t, grp, first)
	grp.Pause()

	appended := NewSynth(11, "b", nil)
	require.NoError(t, grp.AddChild(appended))
	assert.True(t, appended.Paused())

	inserted := NewSynth(12, "c", nil)
	require.NoError(t, grp.InsertChild(inserted, Constraint{Target: first, Position: Before}))
	assert.True(t, inserted.Paused())

	sub := NewParallelGroup(3)
	deep := NewSynth(13, "d", nil)
	mustAdd(t, sub, deep)
	require.NoError(t, grp.AddChildAt(sub, Head))
	assert.True(t, sub.Paused())
	assert.True(t, deep.Paused())

	loose := NewSynth(14, "e", nil)
	require.NoError(t, root.AddChild(loose))
	assert.False(t, loose.Paused(), "siblings of a paused group are not affected")

	grp.Resume()
	for _, n := range []Node{grp, first, appended, inserted, sub, deep} {
		assert.False(t, n.Paused(), "node %s", n.ID())
	}
}

func TestSet_ReachesEverySynth(t *testing.T) {
	root := NewSequentialGroup(1)
	p := NewParallelGroup(2)
	a := NewSynth(10, "a", nil)
	b := NewSynth(11, "b", nil)
	mustAdd(t, root, a, p)
	mustAdd(t, p, b)

	root.Set("amp", 0.25)
	p.Set("freq", 440)

	v, ok := a.Control("amp")
	assert.True(t, ok)
	assert.Equal(t, float32(0.25), v)
	_, ok = a.Control("freq")
	assert.False(t, ok)
	assert.Equal(t, map[string]float32{"amp": 0.25, "freq": 440}, b.Controls())
}

func TestSynth_Run(t *testing.T) {
	var ran []nodeid.ID
	s := NewSynth(10, "sine", UnitFunc(func(s *Synth) { ran = append(ran, s.ID()) }))
	s.Run()
	NewSynth(11, "silent", nil).Run()

	assert.Equal(t, []nodeid.ID{10}, ran)
	assert.Equal(t, "sine", s.Def())
	assert.Equal(t, KindSynth, s.Kind())
	assert.True(t, s.IsSynth())
	assert.False(t, s.IsGroup())
}
