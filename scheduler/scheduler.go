// Package scheduler assigns each sub-block of a composite circuit a
// dependency level, the order circuit.Circuit.Run executes its
// sub-blocks in, ascending by level and falling back to declaration
// order within a level. It also reconciles cross-coupled sub-blocks
// (two blocks each feeding the other, as in a D-latch's NOR pair) by
// promoting a bidirectional child relationship into a same-level peer
// relationship.
package scheduler

import (
	lv "github.com/katalvlaran/lvlath/core"
)

// Graph tracks the "is a child of" and "is a peer of" relationships
// between sub-blocks, identified by opaque string keys the caller
// assigns (circuit.Circuit uses each sub-block's declaration index).
// It is backed by a lvlath mixed-mode graph: child edges are directed,
// peer edges are undirected, so a bidirectional-child cycle is just
// "HasEdge(a,b) && HasEdge(b,a)" and peer fan-out is a scan of the
// graph's undirected edges.
type Graph struct {
	g     *lv.Graph
	level map[string]int
}

const root = "__root__"

// New returns an empty dependency graph seeded with a root entry at
// level 0, representing the owning circuit's own input/output
// boundary.
func New() *Graph {
	g := &Graph{
		g:     lv.NewGraph(lv.WithDirected(true), lv.WithMixedEdges()),
		level: map[string]int{root: 0},
	}
	_ = g.g.AddVertex(root)
	return g
}

// Root is the key representing the owning circuit's external boundary:
// every sub-block the circuit wires an input into becomes a child of
// Root.
func Root() string { return root }

func (g *Graph) ensure(id string) {
	if !g.g.HasVertex(id) {
		_ = g.g.AddVertex(id)
	}
}

// AddChild records that child depends on parent's output (parent must
// run first).
func (g *Graph) AddChild(parent, child string) {
	g.ensure(parent)
	g.ensure(child)
	if !g.g.HasEdge(parent, child) {
		_, _ = g.g.AddEdge(parent, child, 0)
	}
}

// AddPeer records that a and b sit at the same level: two sub-block
// inputs fed from the same external source, or two sub-blocks
// reconciled out of a dependency cycle by PromoteCycles.
func (g *Graph) AddPeer(a, b string) {
	g.ensure(a)
	g.ensure(b)
	if !g.g.HasEdge(a, b) {
		_, _ = g.g.AddEdge(a, b, 0, lv.WithEdgeDirected(false))
	}
}

// PromoteCycles finds every pair of blocks that are each other's child
// (A feeds B and B feeds A, directly) and replaces both directed edges
// with a single undirected peer edge. This is what lets a cross-coupled
// NOR latch, whose two gates each take the other's output as an input,
// be scheduled at all: without promotion neither gate could ever run
// before the other.
func (g *Graph) PromoteCycles() {
	for _, e := range g.g.Edges() {
		if !e.Directed {
			continue
		}
		if g.g.HasEdge(e.To, e.From) {
			if mutual := g.findDirected(e.To, e.From); mutual != "" {
				_ = g.g.RemoveEdge(e.ID)
				_ = g.g.RemoveEdge(mutual)
				g.AddPeer(e.From, e.To)
			}
		}
	}
}

// findDirected returns the edge ID of the directed edge from->to, if
// one exists.
func (g *Graph) findDirected(from, to string) string {
	for _, e := range g.g.Edges() {
		if e.Directed && e.From == from && e.To == to {
			return e.ID
		}
	}
	return ""
}

// Levels assigns every block reachable from Root a level: a child's
// level is max(current, parent's level + 1); a peer's level is raised
// to match its higher-leveled partner. The walk is iterative (an
// explicit stack), not recursive, since Add16's dependency graph is a
// sixteen-deep carry chain and a recursive walk would tie the
// simulator's safe depth to the longest chain anyone builds.
func (g *Graph) Levels() map[string]int {
	type frame struct {
		id    string
		level int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur, ok := g.level[f.id]; !ok || f.level > cur {
			g.level[f.id] = f.level
		} else if ok && f.level <= cur && f.id != root {
			continue
		}
		children, err := g.directedNeighbors(f.id)
		if err == nil {
			for _, c := range children {
				stack = append(stack, frame{c, g.level[f.id] + 1})
			}
		}
		for _, p := range g.peers(f.id) {
			if g.level[p] < g.level[f.id] {
				stack = append(stack, frame{p, g.level[f.id]})
			}
		}
	}
	delete(g.level, root)
	return g.level
}

func (g *Graph) directedNeighbors(id string) ([]string, error) {
	var out []string
	for _, e := range g.g.Edges() {
		if e.Directed && e.From == id {
			out = append(out, e.To)
		}
	}
	return out, nil
}

func (g *Graph) peers(id string) []string {
	var out []string
	for _, e := range g.g.Edges() {
		if !e.Directed {
			if e.From == id {
				out = append(out, e.To)
			} else if e.To == id {
				out = append(out, e.From)
			}
		}
	}
	return out
}
