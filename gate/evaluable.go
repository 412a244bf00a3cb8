package gate

import (
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/signal"
)

// Evaluable is the capability set shared by every simulated block,
// whether a flat Gate or a composite circuit.Circuit. Circuit holds its
// sub-blocks as Evaluable and never needs to know whether a given
// sub-block is itself flat or composite.
type Evaluable interface {
	Name() string
	Inputs() *signal.Bus
	Outputs() *signal.Bus
	// Run evaluates the block for its current input values under the
	// given clock phase, updating its output bus in place.
	Run(phase core.Phase) error
	// Clone returns a deep copy with fresh node identity throughout —
	// composition never shares node identity between a parent and its
	// sub-blocks.
	Clone() Evaluable
	// CloneWith clones using remap to decide each node's replacement:
	// a node already present in remap is reused rather than cloned
	// again. circuit.Circuit uses this to clone a whole tree of
	// sub-blocks while keeping cross-block aliased wires shared in the
	// clone, the same way they were shared in the original.
	CloneWith(remap map[uint64]*signal.Node) Evaluable
	IsInput(label string) bool
	IsOutput(label string) bool
	// SetHighInput and SetLowInput force a named input port to a
	// constant, non-changeable value — used to build Inc16 from Add16.
	SetHighInput(label string) error
	SetLowInput(label string) error
}
