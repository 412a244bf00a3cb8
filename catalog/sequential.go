package catalog

import (
	"strconv"

	"github.com/iperetta/ECS-Simulator/circuit"
	"github.com/iperetta/ECS-Simulator/label"
)

// Dff is a gated D-latch: two AND gates (one the data, one its
// complement through Not) feed a cross-coupled NOR pair, and both AND
// gates' "clock" legs are marked SetAsClock rather than wired to any
// data line, each leg is otherwise undriven, so its effective value is
// exactly the current phase (see circuit.Circuit.applyClockGate). With
// phase HIGH the latch is transparent to in; with phase LOW the NOR
// pair holds its last value via feedback.
func Dff() *circuit.Circuit {
	c := circuit.New("Dff", []string{"in"}, []string{"out"})
	not := c.Add(Not())
	and1 := c.Add(And())
	and2 := c.Add(And())
	nor1 := c.Add(Nor())
	nor2 := c.Add(Nor())

	must(c.SetAsInput("in", not, "in"))
	must(c.SetAsInput("in", and1, "a"))
	must(c.Connect(not, "out", and2, "b"))
	must(c.Connect(and1, "z", nor1, "a"))
	must(c.Connect(and2, "z", nor2, "b"))
	must(c.Connect(nor1, "out", nor2, "a"))
	must(c.Connect(nor2, "out", nor1, "b"))
	must(c.SetAsOutput(nor2, "out", "out"))
	must(c.SetAsClock(and1, "b"))
	must(c.SetAsClock(and2, "a"))

	must(c.Schedule())
	return c
}

// Bit is Dff's same topology with an extra And gate ANDing load against
// the clock (load's own clock leg is the only SetAsClock mark, the
// data-path ANDs are instead driven by the load-AND's output), so the
// latch only writes when both load is HIGH and phase is HIGH, and holds
// otherwise, including across a full tick where load never goes HIGH.
func Bit() *circuit.Circuit {
	c := circuit.New("Bit", []string{"in", "load"}, []string{"out"})
	not := c.Add(Not())
	and1 := c.Add(And())
	and2 := c.Add(And())
	nor1 := c.Add(Nor())
	nor2 := c.Add(Nor())
	loadAnd := c.Add(And())

	must(c.SetAsInput("in", not, "in"))
	must(c.SetAsInput("in", and1, "a"))
	must(c.Connect(not, "out", and2, "b"))
	must(c.Connect(and1, "z", nor1, "a"))
	must(c.Connect(and2, "z", nor2, "b"))
	must(c.Connect(nor1, "out", nor2, "a"))
	must(c.Connect(nor2, "out", nor1, "b"))
	must(c.SetAsOutput(nor2, "out", "out"))

	must(c.SetAsInput("load", loadAnd, "a"))
	must(c.SetAsClock(loadAnd, "b"))
	must(c.Connect(loadAnd, "z", and1, "b"))
	must(c.Connect(loadAnd, "z", and2, "a"))

	must(c.Schedule())
	return c
}

// Register is 16 Bits sharing one load line. No clock port is wired
// here: Run's phase
// argument already threads straight into every sub-block recursively,
// including each Bit's own internal clock gating, so the composite
// needs nothing extra to pass the clock down.
func Register() *circuit.Circuit {
	in := label.Sequence("in", 16)
	out := label.Sequence("out", 16)
	inputs := append(append([]string(nil), in...), "load")

	c := circuit.New("Register", inputs, out)
	bits := c.AddMany(Bit(), 16)
	for i, idx := range bits {
		must(c.SetAsInput("in"+strconv.Itoa(i), idx, "in"))
		must(c.SetAsInput("load", idx, "load"))
		must(c.SetAsOutput(idx, "out", "out"+strconv.Itoa(i)))
	}

	must(c.Schedule())
	return c
}
