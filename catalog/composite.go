package catalog

import (
	"strconv"

	"github.com/iperetta/ECS-Simulator/circuit"
	"github.com/iperetta/ECS-Simulator/label"
)

// Xor is built from Nand, Or and And rather than from raw transistors:
// Nand(a,b) AND Or(a,b). Both Nand and Or read
// the circuit's own a/b inputs: Or's ports never receive a direct
// binding of their own, only a fan-out peer declaration with Nand's via
// Connect, resolved by circuit.Circuit's input-group mechanism.
func Xor() *circuit.Circuit {
	c := circuit.New("Xor", []string{"a", "b"}, []string{"z"})
	nand := c.Add(Nand())
	or := c.Add(Or())
	and := c.Add(And())

	must(c.SetAsInput("a", nand, "a"))
	must(c.SetAsInput("b", nand, "b"))
	must(c.SetAsOutput(and, "z", "z"))

	must(c.Connect(nand, "a", or, "a"))
	must(c.Connect(nand, "b", or, "b"))
	must(c.Connect(nand, "z", and, "a"))
	must(c.Connect(or, "z", and, "b"))

	must(c.Schedule())
	return c
}

// Xnor is Xor followed by Not.
func Xnor() *circuit.Circuit {
	c := circuit.New("Xnor", []string{"a", "b"}, []string{"z"})
	xor := c.Add(Xor())
	not := c.Add(Not())

	must(c.SetAsInput("a", xor, "a"))
	must(c.SetAsInput("b", xor, "b"))
	must(c.SetAsOutput(not, "out", "z"))
	must(c.Connect(xor, "z", not, "in"))

	must(c.Schedule())
	return c
}

// Mux selects b when sel is HIGH and a otherwise: AND(NOT(sel), a) OR
// AND(sel, b), four parts in all.
func Mux() *circuit.Circuit {
	c := circuit.New("Mux", []string{"a", "b", "sel"}, []string{"out"})
	not := c.Add(Not())
	and1 := c.Add(And())
	and2 := c.Add(And())
	or := c.Add(Or())

	must(c.SetAsInput("a", and1, "b"))
	must(c.SetAsInput("b", and2, "b"))
	must(c.SetAsOutput(or, "z", "out"))
	must(c.Connect(and1, "z", or, "a"))
	must(c.Connect(and2, "z", or, "b"))
	must(c.SetAsInput("sel", not, "in"))
	must(c.SetAsInput("sel", and2, "a"))
	must(c.Connect(not, "out", and1, "a"))

	must(c.Schedule())
	return c
}

// Mux4way picks one of four named inputs (label.Sequence("@", 4):
// "a", "b", "c", "d") using two select bits, via three Mux instances:
// the first two pick within each pair by sel0, the third picks between
// the pair results by sel1.
func Mux4way() *circuit.Circuit {
	ins := label.Sequence("@", 4) // a, b, c, d
	c := circuit.New("Mux4way", append(append([]string(nil), ins...), "sel1", "sel0"), []string{"out"})
	muxes := c.AddMany(Mux(), 3)
	m0, m1, m2 := muxes[0], muxes[1], muxes[2]

	must(c.SetAsInput("sel1", m2, "sel"))
	must(c.SetAsInput("sel0", m0, "sel"))
	must(c.SetAsInput("sel0", m1, "sel"))
	must(c.SetAsInput(ins[0], m0, "a"))
	must(c.SetAsInput(ins[1], m0, "b"))
	must(c.SetAsInput(ins[2], m1, "a"))
	must(c.SetAsInput(ins[3], m1, "b"))
	must(c.SetAsOutput(m2, "out", "out"))
	must(c.Connect(m0, "out", m2, "a"))
	must(c.Connect(m1, "out", m2, "b"))

	must(c.Schedule())
	return c
}

// Mux16 fans a single Mux out across 16 bit positions, all sharing one
// sel line, the same way Add16 fans HalfAdder/FullAdder out across 16
// bit positions sharing one carry chain.
func Mux16() *circuit.Circuit {
	a := label.Sequence("a", 16)
	b := label.Sequence("b", 16)
	out := label.Sequence("out", 16)
	inputs := append(append(append([]string(nil), a...), b...), "sel")

	c := circuit.New("Mux16", inputs, out)
	idxs := c.AddMany(Mux(), 16)
	for i := 0; i < 16; i++ {
		must(c.SetAsInput("a"+strconv.Itoa(i), idxs[i], "a"))
		must(c.SetAsInput("b"+strconv.Itoa(i), idxs[i], "b"))
		must(c.SetAsInput("sel", idxs[i], "sel"))
		must(c.SetAsOutput(idxs[i], "out", "out"+strconv.Itoa(i)))
	}

	must(c.Schedule())
	return c
}

// HalfAdder is Xor (sum) plus And (carry) over the same a/b inputs.
func HalfAdder() *circuit.Circuit {
	c := circuit.New("HalfAdder", []string{"a", "b"}, []string{"sum", "carry"})
	xor := c.Add(Xor())
	and := c.Add(And())

	must(c.SetAsInput("a", xor, "a"))
	must(c.SetAsInput("b", xor, "b"))
	must(c.SetAsInput("a", and, "a"))
	must(c.SetAsInput("b", and, "b"))
	must(c.SetAsOutput(xor, "z", "sum"))
	must(c.SetAsOutput(and, "z", "carry"))

	must(c.Schedule())
	return c
}

// FullAdder is two HalfAdders plus Or: the first adds a+b, the second
// adds that sum to the incoming carry c, and Or combines both half
// carries.
func FullAdder() *circuit.Circuit {
	c := circuit.New("FullAdder", []string{"a", "b", "c"}, []string{"sum", "carry"})
	h0 := c.Add(HalfAdder())
	h1 := c.Add(HalfAdder())
	or := c.Add(Or())

	must(c.SetAsInput("a", h0, "a"))
	must(c.SetAsInput("b", h0, "b"))
	must(c.SetAsInput("c", h1, "b"))
	must(c.Connect(h0, "sum", h1, "a"))
	must(c.SetAsOutput(h1, "sum", "sum"))
	must(c.Connect(h0, "carry", or, "a"))
	must(c.Connect(h1, "carry", or, "b"))
	must(c.SetAsOutput(or, "z", "carry"))

	must(c.Schedule())
	return c
}

// Add16 chains one HalfAdder (bit 0, no carry in) and fifteen
// FullAdders (bits 1-15, each carry-chained from the previous bit) into
// a ripple-carry adder over two 16-bit operands, labeled MSB-first
// ("a15".."a0", "b15".."b0") per signal.Bus's own convention.
func Add16() *circuit.Circuit {
	a := label.Sequence("a", 16)
	b := label.Sequence("b", 16)
	out := label.Sequence("out", 16)
	inputs := append(append([]string(nil), a...), b...)

	c := circuit.New("Add16", inputs, out)
	bit0 := c.Add(HalfAdder())
	rest := c.AddMany(FullAdder(), 15)

	must(c.SetAsInput("a0", bit0, "a"))
	must(c.SetAsInput("b0", bit0, "b"))
	must(c.SetAsOutput(bit0, "sum", "out0"))
	prev := bit0
	for i := 1; i <= 15; i++ {
		idx := rest[i-1]
		must(c.SetAsInput("a"+strconv.Itoa(i), idx, "a"))
		must(c.SetAsInput("b"+strconv.Itoa(i), idx, "b"))
		must(c.SetAsOutput(idx, "sum", "out"+strconv.Itoa(i)))
		must(c.Connect(prev, "carry", idx, "c"))
		prev = idx
	}

	must(c.Schedule())
	return c
}

// Inc16 is Add16 with its b operand hard-wired to the literal 1: bit 0
// forced HIGH, bits 1-15 forced LOW. With this Bus's MSB-first label
// convention, "b0" is the least-significant bit, so forcing it alone
// builds a true +1 rather than a sign-flip.
func Inc16() *circuit.Circuit {
	c := circuit.New("Inc16", label.Sequence("inp", 16), label.Sequence("out", 16))
	add := c.Add(Add16())

	for i := 0; i < 16; i++ {
		must(c.SetAsInput("inp"+strconv.Itoa(i), add, "a"+strconv.Itoa(i)))
		must(c.SetAsOutput(add, "out"+strconv.Itoa(i), "out"+strconv.Itoa(i)))
	}
	must(c.SetAsHighInput(add, "b0"))
	for i := 1; i <= 15; i++ {
		must(c.SetAsLowInput(add, "b"+strconv.Itoa(i)))
	}

	must(c.Schedule())
	return c
}
