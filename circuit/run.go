package circuit

import (
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/signal"
)

// Run evaluates every sub-block once, in ascending dependency-level
// order (Schedule must have been called after the last wiring change).
// Before a sub-block runs, every input binding that feeds it copies
// its driver's current value into the sub-block's port, and every port
// marked by SetAsClock has its value ANDed with phase; after every
// sub-block has run, output bindings copy sub-block outputs onto the
// circuit's own output bus.
func (c *Circuit) Run(phase core.Phase) error {
	for level, idx := range c.order {
		c.applyInputBindings(idx)
		c.applyClockGate(idx, phase)
		c.log.V(1).Info("running sub-block", "circuit", c.name, "index", idx,
			"name", c.blocks[idx].Name(), "scheduleSlot", level, "phase", phase)
		if err := c.blocks[idx].Run(phase); err != nil {
			c.log.Error(err, "sub-block run failed", "circuit", c.name, "index", idx)
			return err
		}
	}
	c.applyOutputBindings()
	return nil
}

func (c *Circuit) applyInputBindings(idx int) {
	apply := func(bindings []inputBinding) {
		for _, b := range bindings {
			if b.block != idx {
				continue
			}
			n, err := c.blocks[idx].Inputs().Get(b.label)
			if err != nil {
				continue
			}
			n.SetValue(b.src.Value())
		}
	}
	apply(c.inBindings)
	apply(c.groupBindings)
}

// applyClockGate sets every port SetAsClock marked on sub-block idx to
// its wire value ANDed with the current clock phase. The wire value is
// the driver of the port's input binding, if it has one; a port with no
// binding counts as HIGH, so its value is just the phase. Every
// clock-gated port in the catalog's own Dff/Bit/Register builds is
// undriven this way (it is the AND gate's own clock leg, not a data
// line). The port's own previous value is never read, which keeps a
// clock-gated port from latching its last masked value across ticks,
// as a literal AND-with-previous-value would the moment phase went low
// once.
func (c *Circuit) applyClockGate(idx int, phase core.Phase) {
	for _, port := range c.gated[idx] {
		n, err := c.blocks[idx].Inputs().Get(port)
		if err != nil {
			continue
		}
		wire := signal.High
		for _, bindings := range [][]inputBinding{c.inBindings, c.groupBindings} {
			for _, b := range bindings {
				if b.block == idx && b.label == port {
					wire = b.src.Value()
				}
			}
		}
		n.SetValue(signal.FromBool(wire == signal.High && phase == core.PhaseHigh))
	}
}

func (c *Circuit) applyOutputBindings() {
	for _, b := range c.outBindings {
		n, err := c.outputs.Get(b.label)
		if err != nil {
			continue
		}
		n.SetValue(b.src.Value())
	}
}
