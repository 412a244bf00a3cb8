package circuit

import (
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
)

// Op is one wiring call recorded against a Circuit, in declaration
// order, excluding Add/AddMany — see Snapshot.Blocks for those. See
// gate.Op for the same approach one layer down, against a flat Gate.
type Op struct {
	Kind     string // "input", "output", "clock", "high", "low", "connect"
	Idx      int
	SubLabel string
	Label    string
	IdxB     int
	PortB    string
}

// Envelope is a recursive, gob-friendly stand-in for a gate.Evaluable:
// exactly one of Gate or Circuit is set, tagged by Kind, so a
// Circuit's own sub-blocks (each either a flat Gate or another nested
// Circuit) can be persisted and rebuilt without the library package
// needing to know the concrete Evaluable variants itself.
type Envelope struct {
	Kind    string
	Gate    *gate.Snapshot
	Circuit *Snapshot
}

// EnvelopeOf captures e as an Envelope, or an error if e is neither a
// *gate.Gate nor a *Circuit — the only two Evaluable implementations
// this module ships.
func EnvelopeOf(e gate.Evaluable) (Envelope, error) {
	switch v := e.(type) {
	case *gate.Gate:
		s := v.Snapshot()
		return Envelope{Kind: "gate", Gate: &s}, nil
	case *Circuit:
		s := v.Snapshot()
		return Envelope{Kind: "circuit", Circuit: &s}, nil
	default:
		return Envelope{}, core.NewError(core.PersistenceFailure, e.Name(), "EnvelopeOf", "unknown Evaluable concrete type")
	}
}

// Rebuild reconstructs the Evaluable an Envelope describes.
func (e Envelope) Rebuild() (gate.Evaluable, error) {
	switch e.Kind {
	case "gate":
		return gate.Rebuild(*e.Gate)
	case "circuit":
		return Rebuild(*e.Circuit)
	default:
		return nil, core.NewError(core.PersistenceFailure, "", "Envelope.Rebuild", "unknown envelope kind "+e.Kind)
	}
}

// Snapshot captures everything Rebuild needs to reproduce this
// circuit: its boundary shape, its sub-blocks (each recursively
// snapshotted) and its wiring op log.
type Snapshot struct {
	Name         string
	InputLabels  []string
	OutputLabels []string
	Blocks       []Envelope
	Ops          []Op
}

// Snapshot returns a gob-friendly description of the circuit suitable
// for library persistence.
func (c *Circuit) Snapshot() Snapshot {
	blocks := make([]Envelope, len(c.blocks))
	for i, b := range c.blocks {
		env, err := EnvelopeOf(b)
		if err != nil {
			// Add/AddMany only ever accept a gate.Evaluable produced by
			// this module's own builders, so this is unreachable in
			// practice; keep the zero Envelope rather than panicking
			// persistence code that callers expect to fail softly via
			// an error return instead.
			continue
		}
		blocks[i] = env
	}
	return Snapshot{
		Name:         c.name,
		InputLabels:  c.inputs.Labels(),
		OutputLabels: c.outputs.Labels(),
		Blocks:       blocks,
		Ops:          append([]Op(nil), c.ops...),
	}
}

// Rebuild replays a Snapshot's sub-blocks and op log against a fresh
// Circuit of the same boundary shape, reproducing the original's
// wiring and schedule exactly.
func Rebuild(s Snapshot) (*Circuit, error) {
	c := New(s.Name, s.InputLabels, s.OutputLabels)
	for _, env := range s.Blocks {
		blk, err := env.Rebuild()
		if err != nil {
			return nil, err
		}
		c.Add(blk)
	}
	for _, op := range s.Ops {
		var err error
		switch op.Kind {
		case "input":
			err = c.SetAsInput(op.Label, op.Idx, op.SubLabel)
		case "output":
			err = c.SetAsOutput(op.Idx, op.SubLabel, op.Label)
		case "clock":
			err = c.SetAsClock(op.Idx, op.SubLabel)
		case "high":
			err = c.SetAsHighInput(op.Idx, op.SubLabel)
		case "low":
			err = c.SetAsLowInput(op.Idx, op.SubLabel)
		case "connect":
			err = c.Connect(op.Idx, op.SubLabel, op.IdxB, op.PortB)
		default:
			err = core.NewError(core.PersistenceFailure, s.Name, "Rebuild", "unknown op kind "+op.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := c.Schedule(); err != nil {
		return nil, err
	}
	return c, nil
}
