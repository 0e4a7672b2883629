package node

import (
	"maps"

	"github.com/specialistvlad/novagraph/internal/nodeid"
)

// Unit is the audio computation behind a synth. Implementations live outside
// this package; the dispatcher calls Process once per block.
type Unit interface {
	Process(s *Synth)
}

// UnitFunc adapts a function to Unit.
type UnitFunc func(s *Synth)

// Process calls f(s).
func (f UnitFunc) Process(s *Synth) { f(s) }

// Synth is a leaf node. It satisfies queue.Job.
type Synth struct {
	nodeBase

	def      string
	unit     Unit
	controls map[string]float32
}

// NewSynth creates a detached synth holding one caller reference. def names
// the synth definition and unit may be nil for a silent synth.
func NewSynth(id nodeid.ID, def string, unit Unit) *Synth {
	s := &Synth{
		def:      def,
		unit:     unit,
		controls: make(map[string]float32),
	}
	s.init(id, KindSynth, s)
	return s
}

// Def returns the synth definition name.
func (s *Synth) Def() string { return s.def }

// Run processes one block.
func (s *Synth) Run() {
	if s.unit != nil {
		s.unit.Process(s)
	}
}

// Set assigns a control value.
func (s *Synth) Set(control string, value float32) {
	s.controls[control] = value
}

// Control returns a control value and whether it was ever set.
func (s *Synth) Control(control string) (float32, bool) {
	v, ok := s.controls[control]
	return v, ok
}

// Controls returns a copy of all control values.
func (s *Synth) Controls() map[string]float32 {
	return maps.Clone(s.controls)
}
