// Package clock provides the clock phase type used by catalog's
// sequential parts (Dff, Bit, Register) and a small generator for
// driving that phase across successive Run passes in a test harness.
package clock

import (
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/signal"
)

type Phase = core.Phase

const (
	Low  = core.PhaseLow
	High = core.PhaseHigh
)

// Source is a free-running clock: a phase the test or demo harness
// toggles between passes and hands to Run as its phase argument, which
// the catalog's sequential parts apply to their clock-gated ports. The
// engine itself never toggles it — nothing about Gate or Circuit
// evaluation depends on wall-clock time.
type Source struct {
	phase core.Phase
}

// NewSource starts a clock source at Low.
func NewSource() *Source { return &Source{phase: Low} }

// Tick flips the phase and returns the new value.
func (s *Source) Tick() core.Phase {
	if s.phase == Low {
		s.phase = High
	} else {
		s.phase = Low
	}
	return s.phase
}

// Phase reports the current phase without advancing it.
func (s *Source) Phase() core.Phase { return s.phase }

// Gate masks v by phase: High only when both v and phase are High. This
// is the rule circuit.Circuit applies internally to any port marked
// through SetAsClock, with an unbound port's v taken as High (see
// Circuit.applyClockGate); it is
// exported here for callers composing a clock line with a data value by
// hand outside of a Circuit, e.g. a demo harness checking a Dff's
// enable line.
func Gate(v signal.Value, phase core.Phase) signal.Value {
	return signal.FromBool(v.Bool() && phase == core.PhaseHigh)
}
