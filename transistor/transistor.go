// Package transistor implements the single primitive every gate is
// built from: a voltage-controlled switch between two terminals.
package transistor

import "github.com/iperetta/ECS-Simulator/signal"

// Transistor models a bipolar switch with base B, collector C and
// emitter E. When B reads HIGH the C-E bridge conducts; otherwise it is
// open. Gate owns the graph edge this bridge corresponds to — Transistor
// itself only tracks the logical bridge state.
type Transistor struct {
	B, C, E *signal.Node
	bridge  bool
}

// New wires a transistor across base b, collector c and emitter e.
func New(b, c, e *signal.Node) *Transistor {
	return &Transistor{B: b, C: c, E: e}
}

// Logic recomputes the bridge state from B's current value. It does not
// touch the owning gate's adjacency graph — Gate.Run calls this and
// then adds or removes the C-E edge to match.
func (t *Transistor) Logic() {
	t.bridge = t.B.Value() == signal.High
}

// Bridge reports whether the C-E path currently conducts.
func (t *Transistor) Bridge() bool { return t.bridge }

// Clone returns a transistor wired to the given (already-cloned)
// terminal nodes, preserving no mutable state of its own beyond what
// Logic will recompute on the next Run.
func (t *Transistor) Clone(b, c, e *signal.Node) *Transistor {
	return &Transistor{B: b, C: c, E: e}
}
