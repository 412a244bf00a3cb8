// Package gate implements the flat transistor network: a Gate owns no
// sub-blocks, only nodes and transistors wired directly to each other,
// and resolves its outputs via VCC/GND reachability.
package gate

import (
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/iperetta/ECS-Simulator/transistor"
	lv "github.com/katalvlaran/lvlath/core"
)

// Gate is a flat transistor network: a VCC rail, a GND rail, an input
// and output Bus, and a set of transistors wired directly between them.
// The node adjacency, which nodes are directly wired to which, is
// kept in a lvlath undirected Graph keyed by each node's VertexID, so
// that propagation and short-circuit detection are plain graph walks
// rather than a hand-rolled adjacency map.
type Gate struct {
	name string

	vcc, gnd *signal.Node
	inputs   *signal.Bus
	outputs  *signal.Bus

	transistors []*transistor.Transistor
	// bridgeEdge remembers the lvlath edge ID backing each transistor's
	// C-E bridge, so it can be removed again when the bridge opens.
	bridgeEdge []string

	invertedOutputs map[uint64]bool // node ID -> polarity tap
	owned           []*signal.Node  // every node this gate minted, for Reset
	inputIDs        map[uint64]bool // nodes Reset must leave alone: the caller (or a
	// circuit's input binding) sets these immediately before Run, and
	// Run must not clobber them straight back to Unknown.
	nodeByID map[string]*signal.Node
	// wires records every permanent conductor (non-bridge) connection,
	// in the order they were added, so Clone can rebuild the network's
	// fixed topology without having to distinguish it from the
	// transistor bridge edges that come and go across Run calls, and so
	// verify can replay the static wiring graph for symbolic base
	// propagation.
	wires [][2]*signal.Node
	graph *lv.Graph

	// ops is the designer-API call log, replayed by Rebuild to restore
	// a persisted gate, see snapshot.go.
	ops []Op
}

// New builds an empty flat gate named name with nTransistors freshly
// allocated (each with its own B, C and E node, unwired) and the given
// input/output labels. Wire the transistors together with SetAsVCC,
// SetAsGND, SetAsInput, SetAsOutput and Connect before the first Run.
func New(name string, nTransistors int, inputLabels, outputLabels []string) *Gate {
	g := &Gate{
		name:            name,
		vcc:             signal.NewConstant(signal.High),
		gnd:             signal.NewConstant(signal.Low),
		inputs:          signal.NewLabeledBus("in", inputLabels),
		outputs:         signal.NewLabeledBus("out", outputLabels),
		invertedOutputs: make(map[uint64]bool),
		inputIDs:        make(map[uint64]bool),
		nodeByID:        make(map[string]*signal.Node),
		graph:           lv.NewGraph(),
	}
	g.addVertex(g.vcc)
	g.addVertex(g.gnd)
	for _, n := range g.inputs.Nodes() {
		g.own(n)
		g.inputIDs[n.ID()] = true
	}
	for _, n := range g.outputs.Nodes() {
		g.own(n)
	}
	for i := 0; i < nTransistors; i++ {
		g.AddTransistor()
	}
	return g
}

func (g *Gate) Name() string          { return g.name }
func (g *Gate) Inputs() *signal.Bus   { return g.inputs }
func (g *Gate) Outputs() *signal.Bus  { return g.outputs }
func (g *Gate) VCC() *signal.Node     { return g.vcc }
func (g *Gate) GND() *signal.Node     { return g.gnd }
func (g *Gate) IsInput(l string) bool { return g.inputs.HasLabel(l) }
func (g *Gate) IsOutput(l string) bool {
	return g.outputs.HasLabel(l)
}

// NumTransistors reports how many transistors are wired into this gate.
func (g *Gate) NumTransistors() int { return len(g.transistors) }

// Wires returns the gate's static (non-bridge) conductor list, in
// declaration order. Used by verify's symbolic base propagation, which
// must walk the same fixed topology Run's own propagate does before any
// transistor bridge is toggled.
func (g *Gate) Wires() [][2]*signal.Node { return append([][2]*signal.Node(nil), g.wires...) }

// Transistors returns the gate's transistor list, in declaration order.
func (g *Gate) Transistors() []*transistor.Transistor {
	return append([]*transistor.Transistor(nil), g.transistors...)
}

// Inverted reports the polarity tap recorded for output label.
func (g *Gate) Inverted(label string) (bool, error) {
	n, err := g.outputs.Get(label)
	if err != nil {
		return false, err
	}
	return g.invertedOutputs[n.ID()], nil
}

func (g *Gate) own(n *signal.Node) {
	g.owned = append(g.owned, n)
	g.addVertex(n)
}

func (g *Gate) addVertex(n *signal.Node) {
	g.nodeByID[n.VertexID()] = n
	_ = g.graph.AddVertex(n.VertexID()) // idempotent: AddVertex errors only on duplicate, which we ignore
}

// NewNode mints and registers a fresh changeable node owned by this
// gate, for internal wiring that is neither an input nor an output.
func (g *Gate) NewNode() *signal.Node {
	n := signal.NewNode(true)
	g.own(n)
	return n
}

// Wire connects two nodes directly (a plain conductor, not a
// transistor bridge), used to tie together ports that are always at
// the same potential, e.g. an input port and an internal node it feeds.
func (g *Gate) Wire(a, b *signal.Node) {
	if !g.graph.HasEdge(a.VertexID(), b.VertexID()) {
		_, _ = g.graph.AddEdge(a.VertexID(), b.VertexID(), 0)
		g.wires = append(g.wires, [2]*signal.Node{a, b})
	}
}

// AddTransistor wires a new, otherwise unconnected transistor into the
// network and returns its index for use with SetAsVCC, SetAsGND,
// SetAsInput, SetAsOutput and Connect.
func (g *Gate) AddTransistor() int {
	b, c, e := g.NewNode(), g.NewNode(), g.NewNode()
	t := transistor.New(b, c, e)
	g.transistors = append(g.transistors, t)
	g.bridgeEdge = append(g.bridgeEdge, "")
	return len(g.transistors) - 1
}

func (g *Gate) transistorPort(idx int, port string) (*signal.Node, error) {
	if idx < 0 || idx >= len(g.transistors) {
		return nil, core.NewError(core.MalformedNetlist, g.name, "transistorPort", "transistor index out of range")
	}
	t := g.transistors[idx]
	switch port {
	case "B":
		return t.B, nil
	case "C":
		return t.C, nil
	case "E":
		return t.E, nil
	default:
		return nil, core.NewError(core.MalformedNetlist, g.name, "transistorPort", "unknown port "+port)
	}
}

// SetAsVCC ties transistor idx's named port (normally "C") to the
// supply rail.
func (g *Gate) SetAsVCC(idx int, port string) error {
	n, err := g.transistorPort(idx, port)
	if err != nil {
		return err
	}
	g.Wire(n, g.vcc)
	g.record(Op{Kind: "vcc", Idx: idx, Port: port})
	return nil
}

// SetAsGND ties transistor idx's named port (normally "E") to ground.
func (g *Gate) SetAsGND(idx int, port string) error {
	n, err := g.transistorPort(idx, port)
	if err != nil {
		return err
	}
	g.Wire(n, g.gnd)
	g.record(Op{Kind: "gnd", Idx: idx, Port: port})
	return nil
}

// SetAsInput wires transistor idx's named port to the gate's input
// bus at label.
func (g *Gate) SetAsInput(idx int, port, label string) error {
	n, err := g.transistorPort(idx, port)
	if err != nil {
		return err
	}
	in, err := g.inputs.Get(label)
	if err != nil {
		return err
	}
	g.Wire(n, in)
	g.record(Op{Kind: "in", Idx: idx, Port: port, Label: label})
	return nil
}

// SetAsOutput wires transistor idx's named port to the gate's output
// bus at label and records the tap's polarity: a collector-side tap
// ("C") is inverted, an emitter-side tap ("E") is not, per the
// short-circuit convention in Run.
func (g *Gate) SetAsOutput(idx int, port, label string) error {
	n, err := g.transistorPort(idx, port)
	if err != nil {
		return err
	}
	out, err := g.outputs.Get(label)
	if err != nil {
		return err
	}
	g.Wire(n, out)
	if err := g.MarkOutput(label, port == "C"); err != nil {
		return err
	}
	g.record(Op{Kind: "out", Idx: idx, Port: port, Label: label})
	return nil
}

// Connect wires two transistors' named ports directly together (see
// circuit.Circuit.Connect for the sub-block form).
func (g *Gate) Connect(idxA int, portA string, idxB int, portB string) error {
	a, err := g.transistorPort(idxA, portA)
	if err != nil {
		return err
	}
	b, err := g.transistorPort(idxB, portB)
	if err != nil {
		return err
	}
	g.Wire(a, b)
	g.record(Op{Kind: "connect", Idx: idxA, Port: portA, IdxB: idxB, PortB: portB})
	return nil
}

// MarkOutput records label's polarity tap: inverted means the label
// was wired on the collector side of its driving transistor (the
// "short means pull HIGH unless inverted" convention).
func (g *Gate) MarkOutput(label string, inverted bool) error {
	n, err := g.outputs.Get(label)
	if err != nil {
		return err
	}
	g.invertedOutputs[n.ID()] = inverted
	return nil
}

func (g *Gate) SetHighInput(label string) error {
	n, err := g.inputs.Get(label)
	if err != nil {
		return err
	}
	n.Freeze(signal.High)
	g.record(Op{Kind: "high", Label: label})
	return nil
}

func (g *Gate) SetLowInput(label string) error {
	n, err := g.inputs.Get(label)
	if err != nil {
		return err
	}
	n.Freeze(signal.Low)
	g.record(Op{Kind: "low", Label: label})
	return nil
}
