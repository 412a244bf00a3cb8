package verify

import (
	"github.com/go-air/gini/z"

	"github.com/iperetta/ECS-Simulator/gate"
	"github.com/iperetta/ECS-Simulator/signal"
)

// gateEncoding is a gate.Gate compiled into the shared builder: every
// input label maps to the SAT variable driving it, and every output
// label maps to the literal computed for it.
type gateEncoding struct {
	inputs  map[string]z.Lit
	outputs map[string]z.Lit
}

// net is a union-find set of statically-wired node IDs: every node in
// one net shares a single value at propagate time, exactly as
// gate.Gate's own static wire adjacency does before any transistor
// bridge is considered (see gate/run.go's propagate, which walks the
// graph built from Wire calls, then separately folds in each
// transistor's Logic/Bridge state).
type net struct {
	parent map[uint64]uint64
}

func newNet() *net { return &net{parent: map[uint64]uint64{}} }

func (u *net) find(x uint64) uint64 {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}
	if u.parent[x] != x {
		u.parent[x] = u.find(u.parent[x])
	}
	return u.parent[x]
}

func (u *net) union(a, b uint64) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// dynEdge is one transistor's contribution to the dynamic bridge
// graph: its C and E nets (by union-find root) are connected whenever
// its B net's literal is true.
type dynEdge struct {
	a, c uint64
	gate z.Lit
}

// encodeGate compiles g's transistor network into b's CNF, returning
// each boundary label's literal. The encoding mirrors gate.Run: static
// wires collapse into nets, each net's driving source (VCC, GND, an
// input variable, a forced constant, or, if undriven, false, matching
// the tri-state default of "not High reads as low") is resolved once,
// transistor bridges become conditional edges between their C/E nets
// gated by their B net's literal, and reachability from the VCC net to
// the GND net, gate.Run's short-circuit rule, is computed as a
// bounded fixed point over len(netLit)+1 rounds, enough since a
// reachability path can never need to revisit the same net twice.
func encodeGate(b *builder, g *gate.Gate) gateEncoding {
	u := newNet()
	for _, w := range g.Wires() {
		u.union(w[0].ID(), w[1].ID())
	}

	inputVar := make(map[string]z.Lit, g.Inputs().Width())
	for _, label := range g.Inputs().Labels() {
		n, _ := g.Inputs().Get(label)
		if n.Changeable() {
			inputVar[label] = b.freshVar()
		}
	}

	// netLit resolves the literal driving the net rooted at root,
	// caching results so every node in a net shares one literal.
	netLit := make(map[uint64]z.Lit)
	vccRoot := u.find(g.VCC().ID())
	gndRoot := u.find(g.GND().ID())
	resolve := func(id uint64) (uint64, z.Lit) {
		root := u.find(id)
		if lit, ok := netLit[root]; ok {
			return root, lit
		}
		lit := b.falseLit()
		switch root {
		case vccRoot:
			lit = b.trueLit()
		case gndRoot:
			lit = b.falseLit()
		default:
			for _, label := range g.Inputs().Labels() {
				n, _ := g.Inputs().Get(label)
				if u.find(n.ID()) != root {
					continue
				}
				if v, ok := inputVar[label]; ok {
					lit = v
				} else if n.Value() == signal.High {
					lit = b.trueLit()
				}
				break
			}
		}
		netLit[root] = lit
		return root, lit
	}

	// Resolve the rails before anything else so reach always carries
	// both roots, even for a network whose transistors never touch one
	// of them.
	resolve(g.VCC().ID())
	resolve(g.GND().ID())

	var edges []dynEdge
	for _, t := range g.Transistors() {
		aRoot, _ := resolve(t.C.ID())
		cRoot, _ := resolve(t.E.ID())
		_, gateLit := resolve(t.B.ID())
		edges = append(edges, dynEdge{a: aRoot, c: cRoot, gate: gateLit})
	}

	reach := make(map[uint64]z.Lit, len(netLit))
	for root := range netLit {
		if root == vccRoot {
			reach[root] = b.trueLit()
		} else {
			reach[root] = b.falseLit()
		}
	}
	for round := 0; round < len(netLit)+1; round++ {
		reach = propagateEdges(b, edges, reach)
	}

	short := reach[gndRoot]

	invTrue := b.trueLit()
	invFalse := b.falseLit()
	outLit := make(map[string]z.Lit, g.Outputs().Width())
	for _, label := range g.Outputs().Labels() {
		inv, _ := g.Inverted(label)
		// gate.Run sets every output to !inv when short and inv when
		// not, a plain XOR of the short signal against the tap's own
		// polarity, regardless of anything wired to the output node
		// itself (the output bus only ever receives Run's verdict,
		// never propagates a value of its own).
		invLit := invFalse
		if inv {
			invLit = invTrue
		}
		outLit[label] = b.xor2(short, invLit)
	}

	return gateEncoding{inputs: inputVar, outputs: outLit}
}

// propagateEdges performs one fixed-point sweep over the dynamic
// bridge graph: for every net root v, next[v] = reach[v] || OR over
// edges (u,v) gated by lit of (reach[u] && lit), considered in both
// directions since a closed transistor conducts both ways.
func propagateEdges(b *builder, edges []dynEdge, reach map[uint64]z.Lit) map[uint64]z.Lit {
	contrib := make(map[uint64][]z.Lit, len(reach))
	for _, e := range edges {
		contrib[e.c] = append(contrib[e.c], b.and2(reach[e.a], e.gate))
		contrib[e.a] = append(contrib[e.a], b.and2(reach[e.c], e.gate))
	}
	next := make(map[uint64]z.Lit, len(reach))
	for root, lit := range reach {
		merged := append([]z.Lit{lit}, contrib[root]...)
		next[root] = b.orN(merged)
	}
	return next
}
