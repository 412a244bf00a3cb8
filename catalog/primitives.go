// Package catalog builds the standard parts (gates, muxes, adders,
// latches and registers) from gate.Gate transistor networks and
// circuit.Circuit compositions, using nothing but the designer API.
// Every builder returns a fresh, already-wired part; callers Clone it
// (directly, or implicitly via circuit.Circuit.Add) before composing it
// into something larger.
package catalog

import (
	"strconv"

	"github.com/iperetta/ECS-Simulator/gate"
)

// Not is a single transistor: base on "in", collector to VCC, emitter
// to GND, output tapped on the collector (inverted).
func Not() *gate.Gate {
	g := gate.New("Not", 1, []string{"in"}, []string{"out"})
	must(g.SetAsVCC(0, "C"))
	must(g.SetAsGND(0, "E"))
	must(g.SetAsInput(0, "B", "in"))
	must(g.SetAsOutput(0, "C", "out"))
	return g
}

// And is two transistors in series from VCC to GND, output tapped on
// the second transistor's emitter.
func And() *gate.Gate {
	g := gate.New("And", 2, []string{"a", "b"}, []string{"z"})
	must(g.SetAsVCC(0, "C"))
	must(g.SetAsGND(1, "E"))
	must(g.Connect(0, "E", 1, "C"))
	must(g.SetAsInput(0, "B", "a"))
	must(g.SetAsInput(1, "B", "b"))
	must(g.SetAsOutput(1, "E", "z"))
	return g
}

// Or is two transistors in parallel between VCC and GND, output tapped
// on their shared emitter.
func Or() *gate.Gate {
	g := gate.New("Or", 2, []string{"a", "b"}, []string{"z"})
	must(g.Connect(0, "C", 1, "C"))
	must(g.Connect(0, "E", 1, "E"))
	must(g.SetAsVCC(0, "C"))
	must(g.SetAsGND(0, "E"))
	must(g.SetAsInput(0, "B", "a"))
	must(g.SetAsInput(1, "B", "b"))
	must(g.SetAsOutput(0, "E", "z"))
	return g
}

// Nand is And's topology with the output tapped on the collector side
// instead of the emitter, inverting it.
func Nand() *gate.Gate {
	g := gate.New("Nand", 2, []string{"a", "b"}, []string{"z"})
	must(g.SetAsVCC(0, "C"))
	must(g.SetAsGND(1, "E"))
	must(g.Connect(0, "E", 1, "C"))
	must(g.SetAsInput(0, "B", "a"))
	must(g.SetAsInput(1, "B", "b"))
	must(g.SetAsOutput(0, "C", "z"))
	return g
}

// Nor is Or's topology with the output tapped on the collector side,
// inverting it.
func Nor() *gate.Gate {
	g := gate.New("Nor", 2, []string{"a", "b"}, []string{"out"})
	must(g.SetAsVCC(0, "C"))
	must(g.SetAsGND(1, "E"))
	must(g.Connect(0, "C", 1, "C"))
	must(g.Connect(0, "E", 1, "E"))
	must(g.SetAsInput(0, "B", "a"))
	must(g.SetAsInput(1, "B", "b"))
	must(g.SetAsOutput(1, "C", "out"))
	return g
}

// And4way chains four transistors in series: VCC through the first,
// through the rest collector-to-emitter, to GND through the last,
// output on the last emitter. Four-input And as one flat network, not a
// tree of two-input And sub-blocks.
func And4way() *gate.Gate {
	g := gate.New("And4way", 4, []string{"a", "b", "c", "d"}, []string{"z"})
	must(g.SetAsVCC(0, "C"))
	must(g.SetAsGND(3, "E"))
	must(g.SetAsInput(0, "B", "a"))
	must(g.SetAsInput(1, "B", "b"))
	must(g.SetAsInput(2, "B", "c"))
	must(g.SetAsInput(3, "B", "d"))
	must(g.SetAsOutput(3, "E", "z"))
	must(g.Connect(0, "E", 1, "C"))
	must(g.Connect(1, "E", 2, "C"))
	must(g.Connect(2, "E", 3, "C"))
	return g
}

// Or8way wires eight transistors in parallel between shared VCC/GND
// rails, output on their shared emitter, the flat eight-input Or used
// to build a carry-detect or any wide OR reduction.
func Or8way() *gate.Gate {
	labels := make([]string, 8)
	for i := range labels {
		labels[i] = "in" + strconv.Itoa(i)
	}
	g := gate.New("Or8way", 8, labels, []string{"out"})
	must(g.SetAsVCC(0, "C"))
	must(g.SetAsGND(0, "E"))
	for i := 1; i < 8; i++ {
		must(g.Connect(0, "C", i, "C"))
		must(g.Connect(0, "E", i, "E"))
	}
	for i := 0; i < 8; i++ {
		must(g.SetAsInput(i, "B", "in"+strconv.Itoa(i)))
	}
	must(g.SetAsOutput(0, "E", "out"))
	return g
}

// must panics on an error that a caller wiring known-good literal ports
// and labels can never actually trigger, the same contract
// template.Must/regexp.MustCompile make for construction-time errors
// that indicate a programmer mistake in the catalog itself, not bad
// caller input.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
