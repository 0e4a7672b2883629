// Package testutil holds helpers shared by dispatcher and app tests.
package testutil

import (
	"sync"
	"time"

	"github.com/specialistvlad/novagraph/internal/node"
	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// Recorder is an audio unit that records when each synth ran. It optionally
// sleeps inside Process so that overlapping runs become observable.
type Recorder struct {
	mu      sync.Mutex
	sleep   time.Duration
	order   []nodeid.ID
	records map[nodeid.ID][]ExecutionRecord
}

// NewRecorder creates a recorder that sleeps for sleep on every run.
func NewRecorder(sleep time.Duration) *Recorder {
	return &Recorder{
		sleep:   sleep,
		records: make(map[nodeid.ID][]ExecutionRecord),
	}
}

// Process implements node.Unit.
func (r *Recorder) Process(s *node.Synth) {
	start := time.Now()
	if r.sleep > 0 {
		time.Sleep(r.sleep)
	}
	end := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, s.ID())
	r.records[s.ID()] = append(r.records[s.ID()], ExecutionRecord{Start: start, End: end})
}

// Units is a unit factory that hands out r for every definition.
func (r *Recorder) Units(string) node.Unit {
	return r
}

// Synth creates a detached synth driven by r.
func (r *Recorder) Synth(id nodeid.ID) *node.Synth {
	return node.NewSynth(id, "recorder", r)
}

// Order returns synth ids in completion order.
func (r *Recorder) Order() []nodeid.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]nodeid.ID(nil), r.order...)
}

// Runs returns the total number of recorded runs.
func (r *Recorder) Runs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Records returns every run of one synth.
func (r *Recorder) Records(id nodeid.ID) []ExecutionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ExecutionRecord(nil), r.records[id]...)
}

// Reset forgets all recorded runs.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.records = make(map[nodeid.ID][]ExecutionRecord)
}
