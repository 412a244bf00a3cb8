package gate

import "github.com/iperetta/ECS-Simulator/core"

// Op is one designer-API call recorded against a Gate, in declaration
// order. Replaying a Gate's Ops against a freshly New'd Gate of the
// same shape reproduces its wiring exactly — this is what library.Save
// actually persists, rather than the live node graph itself, so a
// reload never has to reconstruct lvlath internals by hand.
type Op struct {
	Kind  string // "vcc", "gnd", "in", "out", "connect", "high", "low"
	Idx   int
	Port  string
	IdxB  int
	PortB string
	Label string
}

func (g *Gate) record(op Op) { g.ops = append(g.ops, op) }

// Ops returns the gate's designer-API call log, in declaration order.
func (g *Gate) Ops() []Op { return append([]Op(nil), g.ops...) }

// Snapshot captures everything Rebuild needs to reproduce this gate:
// its shape (name, transistor count, port labels) and its op log.
type Snapshot struct {
	Name         string
	NTransistors int
	InputLabels  []string
	OutputLabels []string
	Ops          []Op
}

// Snapshot returns a gob-friendly description of the gate suitable for
// library persistence.
func (g *Gate) Snapshot() Snapshot {
	return Snapshot{
		Name:         g.name,
		NTransistors: len(g.transistors),
		InputLabels:  g.inputs.Labels(),
		OutputLabels: g.outputs.Labels(),
		Ops:          g.Ops(),
	}
}

// Rebuild replays a Snapshot's op log against a fresh Gate of the same
// shape, reproducing the original's wiring and polarity table exactly.
func Rebuild(s Snapshot) (*Gate, error) {
	g := New(s.Name, s.NTransistors, s.InputLabels, s.OutputLabels)
	for _, op := range s.Ops {
		var err error
		switch op.Kind {
		case "vcc":
			err = g.SetAsVCC(op.Idx, op.Port)
		case "gnd":
			err = g.SetAsGND(op.Idx, op.Port)
		case "in":
			err = g.SetAsInput(op.Idx, op.Port, op.Label)
		case "out":
			err = g.SetAsOutput(op.Idx, op.Port, op.Label)
		case "connect":
			err = g.Connect(op.Idx, op.Port, op.IdxB, op.PortB)
		case "high":
			err = g.SetHighInput(op.Label)
		case "low":
			err = g.SetLowInput(op.Label)
		default:
			err = core.NewError(core.PersistenceFailure, s.Name, "Rebuild", "unknown op kind "+op.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}
