package verify

import (
	"strconv"

	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
	"github.com/iperetta/ECS-Simulator/signal"
)

// equivalentEnumerated brute-forces every input assignment up to
// enumerateLimit bits, running a and b once per assignment at
// core.PhaseHigh and comparing their output buses. This is the
// fallback for composite circuit.Circuit values, whose sub-blocks the
// SAT encoder in gate.go does not reach into; it is exact for purely
// combinational parts. A part holding sequential state (a Dff-backed
// Register, say) should be freshly cloned before comparison, since
// Run does not reset that state between calls — comparing two
// long-lived instances mid-sequence is the caller's choice, not a
// limitation of enumeration itself.
func equivalentEnumerated(a, b gate.Evaluable) (bool, error) {
	width := a.Inputs().Width()
	if width > enumerateLimit {
		return false, core.NewError(core.SizeMismatch, a.Name(), "Equivalent",
			"input width "+strconv.Itoa(width)+" exceeds the enumerable limit of "+strconv.Itoa(enumerateLimit)+" bits")
	}

	total := 1
	for i := 0; i < width; i++ {
		total *= 2
	}

	for mask := 0; mask < total; mask++ {
		assign(a, mask)
		assign(b, mask)
		if err := a.Run(core.PhaseHigh); err != nil {
			return false, err
		}
		if err := b.Run(core.PhaseHigh); err != nil {
			return false, err
		}
		if a.Outputs().String() != b.Outputs().String() {
			return false, nil
		}
	}
	return true, nil
}

func assign(e gate.Evaluable, mask int) {
	nodes := e.Inputs().Nodes()
	for i, n := range nodes {
		bit := (mask >> uint(i)) & 1
		n.SetValue(signal.FromBool(bit == 1))
	}
}
