package queue

import (
	"testing"

	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	id     nodeid.ID
	paused bool
	runs   int
}

func (j *fakeJob) ID() nodeid.ID { return j.id }
func (j *fakeJob) Paused() bool  { return j.paused }
func (j *fakeJob) Run()          { j.runs++ }

func TestAdd_TracksRunnableItems(t *testing.T) {
	q := New(3)
	d := q.Add(&fakeJob{id: 3}, nil, 2)
	b := q.Add(&fakeJob{id: 2}, Successors{d}, 1)
	c := q.Add(&fakeJob{id: 4}, Successors{d}, 1)
	a := q.Add(&fakeJob{id: 1}, Successors{b, c}, 0)

	assert.Equal(t, 4, q.Len())
	assert.Equal(t, []*Item{a}, q.Runnable())
	assert.Equal(t, 4, q.Edges())
	assert.Equal(t, 2, d.ActivationLimit())
	assert.False(t, q.ID().IsNil())
	require.NoError(t, q.Validate())
}

func TestAdd_NegativeLimitPanics(t *testing.T) {
	q := New(0)
	assert.Panics(t, func() {
		q.Add(&fakeJob{id: 1}, nil, -1)
	})
}

func TestValidate(t *testing.T) {
	t.Run("empty queue is valid", func(t *testing.T) {
		assert.NoError(t, New(0).Validate())
	})

	t.Run("limit larger than predecessor count", func(t *testing.T) {
		q := New(2)
		b := q.Add(&fakeJob{id: 2}, nil, 2)
		q.Add(&fakeJob{id: 1}, Successors{b}, 0)
		assert.ErrorIs(t, q.Validate(), ErrLimitMismatch)
	})

	t.Run("successor outside the queue", func(t *testing.T) {
		other := New(1)
		foreign := other.Add(&fakeJob{id: 9}, nil, 1)
		q := New(1)
		q.Add(&fakeJob{id: 1}, Successors{foreign}, 0)
		assert.ErrorContains(t, q.Validate(), "outside the queue")
	})

	t.Run("cycle", func(t *testing.T) {
		q := New(2)
		a := q.Add(&fakeJob{id: 1}, nil, 1)
		b := q.Add(&fakeJob{id: 2}, Successors{a}, 1)
		a.successors = Successors{b}
		assert.ErrorIs(t, q.Validate(), ErrCycle)
	})
}

func TestItem_ArmAndSignal(t *testing.T) {
	q := New(1)
	it := q.Add(&fakeJob{id: 5}, nil, 2)

	it.Arm()
	assert.False(t, it.Signal())
	assert.True(t, it.Signal())
	assert.Panics(t, func() { it.Signal() })

	// Re-arming makes the item reusable for a second dispatch of the same plan.
	it.Arm()
	assert.False(t, it.Signal())
}
