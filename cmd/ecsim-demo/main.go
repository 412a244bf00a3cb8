// Command ecsim-demo builds the standard catalog parts and runs them:
// the primitive gates against their truth tables, the adders against a
// few arithmetic cases with a save/reload round trip through
// library.Library, a clocked Register across several ticks, and a
// formal equivalence check through verify.
package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/iperetta/ECS-Simulator/catalog"
	"github.com/iperetta/ECS-Simulator/circuit"
	"github.com/iperetta/ECS-Simulator/clock"
	"github.com/iperetta/ECS-Simulator/config"
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
	"github.com/iperetta/ECS-Simulator/library"
	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/iperetta/ECS-Simulator/verify"
)

func main() {
	log := funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stdout, prefix, args)
	}, funcr.Options{Verbosity: 1})

	cfg := config.Load()
	if err := os.MkdirAll(cfg.LibraryDir, 0o755); err != nil {
		fatal(err)
	}
	lib := library.New(cfg.LibraryDir)

	runTruthTables()
	runArithmetic(lib, cfg)
	runRegister(log)
	runEquivalence()
}

func runTruthTables() {
	fmt.Println("=== primitive truth tables ===")
	parts := []*gate.Gate{catalog.Not(), catalog.And(), catalog.Or(), catalog.Nand(), catalog.Nor()}
	for _, p := range parts {
		fmt.Printf("-- %s\n", p.Name())
		width := p.Inputs().Width()
		for mask := 0; mask < 1<<uint(width); mask++ {
			for i, n := range p.Inputs().Nodes() {
				bit := (mask >> uint(i)) & 1
				n.SetValue(signal.FromBool(bit == 1))
			}
			must(p.Run(core.PhaseLow))
			fmt.Printf("   in=%s out=%s\n", p.Inputs().String(), p.Outputs().String())
		}
	}
}

func runArithmetic(lib *library.Library, cfg config.Config) {
	fmt.Println("=== Add16 / Inc16, with a save/reload round trip ===")
	add16 := catalog.Add16()
	loadOperands(add16, 19, 23)
	must(add16.Run(core.PhaseLow))
	fmt.Printf("19 + 23 = %d (author: %s)\n", add16.Outputs().Int(), cfg.Author)

	if err := lib.Save("Add16", add16); err != nil {
		fatal(err)
	}
	reloaded, err := lib.Load("Add16")
	if err != nil {
		fatal(err)
	}
	loadOperands(reloaded, 100, -37)
	must(reloaded.Run(core.PhaseLow))
	fmt.Printf("100 + (-37) = %d (reloaded from %s)\n", reloaded.Outputs().Int(), lib.PathFor("Add16"))

	inc16 := catalog.Inc16()
	must(inc16.Inputs().LoadInt(41))
	must(inc16.Run(core.PhaseLow))
	fmt.Printf("inc(41) = %d\n", inc16.Outputs().Int())
}

// loadOperands wires a and b across Add16's two 16-bit operand halves.
// Add16's ripple-carry chain runs bit 0 (the HalfAdder, no carry in)
// up through bit 15, so "a0"/"b0" is each operand's least significant
// bit — the same convention as signal.Bus's MSB-first default
// labeling, where label "0" is the last position and the LSB.
func loadOperands(add gate.Evaluable, a, b int64) {
	loadHalf(add, "a", a)
	loadHalf(add, "b", b)
}

func loadHalf(e gate.Evaluable, prefix string, value int64) {
	for i := 0; i < 16; i++ {
		bit := (value >> uint(i)) & 1
		n, err := e.Inputs().Get(fmt.Sprintf("%s%d", prefix, i))
		if err != nil {
			fatal(err)
		}
		n.SetValue(signal.FromBool(bit == 1))
	}
}

func runRegister(log logr.Logger) {
	fmt.Println("=== Register across clock ticks ===")
	reg := catalog.Register()
	reg.SetLogger(log)

	src := clock.NewSource()
	steps := []struct {
		value int64
		load  bool
	}{
		{0xAAAA, true},
		{0xFFFF, false},
		{0x0000, false},
		{0xFFFF, false},
	}
	for _, step := range steps {
		loadWord(reg, step.value)
		setLabel(reg, "load", signal.FromBool(step.load))
		// one high-then-low pass per step: write on the high phase,
		// settle the latch feedback on the low phase.
		must(reg.Run(src.Tick()))
		must(reg.Run(src.Tick()))
		fmt.Printf("load=%v value=0x%04X -> out=%s\n", step.load, uint16(step.value), reg.Outputs().String())
	}
}

func loadWord(c *circuit.Circuit, value int64) {
	for i := 0; i < 16; i++ {
		bit := (value >> uint(i)) & 1
		setLabel(c, fmt.Sprintf("in%d", i), signal.FromBool(bit == 1))
	}
}

func setLabel(c *circuit.Circuit, label string, v signal.Value) {
	n, err := c.Inputs().Get(label)
	if err != nil {
		fatal(err)
	}
	n.SetValue(v)
}

func runEquivalence() {
	fmt.Println("=== formal equivalence via SAT ===")
	ok, err := verify.Equivalent(catalog.Nand(), catalog.Nand())
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Nand == Nand: %v\n", ok)

	ok, err = verify.Equivalent(catalog.Nand(), catalog.And())
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Nand == And: %v\n", ok)

	ok, err = verify.Equivalent(catalog.HalfAdder(), catalog.HalfAdder().Clone())
	if err != nil {
		fatal(err)
	}
	fmt.Printf("HalfAdder == its own clone (enumerated): %v\n", ok)
}

func must(err error) {
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "ecsim-demo:", err)
	os.Exit(1)
}
