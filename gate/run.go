package gate

import (
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/iperetta/ECS-Simulator/transistor"
	lv "github.com/katalvlaran/lvlath/core"
)

// Run evaluates the gate's network once: reset, propagate input values
// across conductor wiring, recompute each transistor's bridge state,
// then resolve every output from VCC/GND reachability (the
// short-circuit rule). A flat gate is purely combinational, so the
// clock phase is accepted only to satisfy Evaluable: it plays no part
// in a transistor network's own evaluation, only in the clock-gated
// inputs a circuit.Circuit wires ahead of a sub-block.
func (g *Gate) Run(phase core.Phase) error {
	g.resetNetwork()

	for _, n := range g.inputs.Nodes() {
		g.propagate(n)
	}

	for i, t := range g.transistors {
		t.Logic()
		g.syncBridge(i, t)
	}

	short := g.isShortCircuit()
	for _, o := range g.outputs.Nodes() {
		inv := g.invertedOutputs[o.ID()]
		if short {
			o.SetValue(signal.FromBool(!inv))
		} else {
			o.SetValue(signal.FromBool(inv))
		}
	}
	return nil
}

func (g *Gate) resetNetwork() {
	for _, n := range g.owned {
		if g.inputIDs[n.ID()] {
			continue
		}
		n.Reset()
	}
	for i, eid := range g.bridgeEdge {
		if eid != "" {
			_ = g.graph.RemoveEdge(eid)
			g.bridgeEdge[i] = ""
		}
	}
}

func (g *Gate) syncBridge(i int, t *transistor.Transistor) {
	if t.Bridge() {
		if g.bridgeEdge[i] == "" {
			id, err := g.graph.AddEdge(t.C.VertexID(), t.E.VertexID(), 0)
			if err == nil {
				g.bridgeEdge[i] = id
			}
		}
	} else if g.bridgeEdge[i] != "" {
		_ = g.graph.RemoveEdge(g.bridgeEdge[i])
		g.bridgeEdge[i] = ""
	}
}

// propagate copies origin's value across every node directly reachable
// from it through the current graph, using an explicit stack rather
// than recursion: deep register files chain many gates' graphs
// together indirectly through circuit.Circuit, and a recursive walk
// here would bound the deepest composite on call-stack depth.
func (g *Gate) propagate(origin *signal.Node) {
	visited := map[string]bool{origin.VertexID(): true}
	stack := []*signal.Node{origin}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.SetValue(origin.Value())
		neighbors, err := g.graph.NeighborIDs(cur.VertexID())
		if err != nil {
			continue
		}
		for _, nb := range neighbors {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			if n, ok := g.nodeByID[nb]; ok {
				stack = append(stack, n)
			}
		}
	}
}

// isShortCircuit reports whether GND is reachable from VCC through the
// network's current conductor and bridge edges, the condition that
// drives every output's value (see Run).
func (g *Gate) isShortCircuit() bool {
	gndID := g.gnd.VertexID()
	start := g.vcc.VertexID()
	visited := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == gndID {
			return true
		}
		neighbors, err := g.graph.NeighborIDs(cur)
		if err != nil {
			continue
		}
		for _, nb := range neighbors {
			if !visited[nb] {
				visited[nb] = true
				stack = append(stack, nb)
			}
		}
	}
	return false
}

// Clone returns a gate with the same transistor network and output
// polarity table but entirely fresh node identity, so that composing
// the same part twice into a circuit never has the two instances share
// a single node.
func (g *Gate) Clone() Evaluable {
	return g.CloneWith(make(map[uint64]*signal.Node, len(g.owned)))
}

// CloneWith clones the gate using remap to decide each node's
// replacement, see Evaluable.CloneWith.
func (g *Gate) CloneWith(remap map[uint64]*signal.Node) Evaluable {
	c := &Gate{
		name:            g.name,
		invertedOutputs: make(map[uint64]bool, len(g.invertedOutputs)),
		inputIDs:        make(map[uint64]bool, len(g.inputIDs)),
		nodeByID:        make(map[string]*signal.Node, len(g.owned)),
		graph:           lv.NewGraph(),
		ops:             append([]Op(nil), g.ops...),
	}

	cloneOwned := func(n *signal.Node) *signal.Node {
		cn := signal.CloneNodeWith(n, remap)
		c.own(cn)
		if g.inputIDs[n.ID()] {
			c.inputIDs[cn.ID()] = true
		}
		return cn
	}

	c.vcc = cloneOwned(g.vcc)
	c.gnd = cloneOwned(g.gnd)
	for _, n := range g.owned {
		cloneOwned(n)
	}

	c.inputs = g.inputs.CloneWith(remap)
	c.outputs = g.outputs.CloneWith(remap)

	for i, n := range g.outputs.Nodes() {
		if inv, ok := g.invertedOutputs[n.ID()]; ok {
			c.invertedOutputs[c.outputs.At(i).ID()] = inv
		}
	}

	for _, w := range g.wires {
		c.Wire(remap[w[0].ID()], remap[w[1].ID()])
	}

	for _, t := range g.transistors {
		ct := t.Clone(remap[t.B.ID()], remap[t.C.ID()], remap[t.E.ID()])
		c.transistors = append(c.transistors, ct)
		c.bridgeEdge = append(c.bridgeEdge, "")
	}

	return c
}
