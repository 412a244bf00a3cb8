package signal

import (
	"strconv"
	"strings"

	"github.com/iperetta/ECS-Simulator/core"
)

// Bus is an ordered, labeled vector of Nodes. Labels are injective: each
// label names exactly one position. Unless given explicit labels, a Bus
// of width n is labeled "n-1".."0", MSB first: this is the convention
// Add16/Inc16 rely on to address their most significant bit as the
// highest-index label and their least significant bit as "0".
type Bus struct {
	name   string
	nodes  []*Node
	labels map[string]int
	order  []string // label at each position, parallel to nodes
}

// NewBus builds a width-n bus of fresh changeable nodes under default
// descending-integer labels.
func NewBus(name string, width int) *Bus {
	labels := make([]string, width)
	for i := 0; i < width; i++ {
		labels[i] = strconv.Itoa(width - 1 - i)
	}
	return NewLabeledBus(name, labels)
}

// NewLabeledBus builds a bus of fresh changeable nodes under the given
// labels, in the given order. Labels must be unique.
func NewLabeledBus(name string, labels []string) *Bus {
	b := &Bus{
		name:   name,
		nodes:  make([]*Node, len(labels)),
		labels: make(map[string]int, len(labels)),
		order:  append([]string(nil), labels...),
	}
	for i, l := range labels {
		b.nodes[i] = NewNode(true)
		b.labels[l] = i
	}
	return b
}

func (b *Bus) Name() string   { return b.name }
func (b *Bus) Width() int     { return len(b.nodes) }
func (b *Bus) Nodes() []*Node { return b.nodes }

// Labels returns the bus's labels in positional order.
func (b *Bus) Labels() []string { return append([]string(nil), b.order...) }

// Get returns the node at label, or an UnknownLabel error.
func (b *Bus) Get(label string) (*Node, error) {
	i, ok := b.labels[label]
	if !ok {
		return nil, core.NewError(core.UnknownLabel, b.name, "Get", "no such label "+label)
	}
	return b.nodes[i], nil
}

// HasLabel reports whether label names a position on this bus.
func (b *Bus) HasLabel(label string) bool {
	_, ok := b.labels[label]
	return ok
}

// At returns the node at positional index i (0 is the first declared
// position, not necessarily the MSB; see Labels for the label at i).
func (b *Bus) At(i int) *Node { return b.nodes[i] }

// SetLabels replaces the bus's labels in positional order. len(labels)
// must equal Width.
func (b *Bus) SetLabels(labels []string) error {
	if len(labels) != len(b.nodes) {
		return core.NewError(core.SizeMismatch, b.name, "SetLabels",
			"got "+strconv.Itoa(len(labels))+" labels for width "+strconv.Itoa(len(b.nodes)))
	}
	newMap := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := newMap[l]; dup {
			return core.NewError(core.MalformedNetlist, b.name, "SetLabels", "duplicate label "+l)
		}
		newMap[l] = i
	}
	b.labels = newMap
	b.order = append([]string(nil), labels...)
	return nil
}

// LoadNodes replaces the bus's underlying nodes, keeping the existing
// labels. Used when wiring a bus onto an already-built node list (e.g.
// aliasing a sub-block's port bus).
func (b *Bus) LoadNodes(nodes []*Node) error {
	if len(nodes) != len(b.nodes) {
		return core.NewError(core.SizeMismatch, b.name, "LoadNodes",
			"got "+strconv.Itoa(len(nodes))+" nodes for width "+strconv.Itoa(len(b.nodes)))
	}
	b.nodes = append([]*Node(nil), nodes...)
	return nil
}

// LoadBus copies values (not node identity) from other into b, position
// by position. Widths must match.
func (b *Bus) LoadBus(other *Bus) error {
	if other.Width() != b.Width() {
		return core.NewError(core.SizeMismatch, b.name, "LoadBus",
			"width "+strconv.Itoa(other.Width())+" does not match "+strconv.Itoa(b.Width()))
	}
	for i, n := range other.nodes {
		b.nodes[i].SetValue(n.Value())
	}
	return nil
}

// LoadInt encodes value as a two's-complement bit pattern across the
// bus, MSB at position 0, and assigns it to the underlying nodes.
func (b *Bus) LoadInt(value int64) error {
	n := len(b.nodes)
	if n == 0 {
		return core.NewError(core.SizeMismatch, b.name, "LoadInt", "zero-width bus")
	}
	if n < 64 {
		lo := -(int64(1) << uint(n-1))
		hi := (int64(1) << uint(n-1)) - 1
		if value < lo || value > hi {
			return core.NewError(core.SizeMismatch, b.name, "LoadInt",
				"value out of range for width "+strconv.Itoa(n))
		}
	}
	for i := 0; i < n; i++ {
		shift := uint(n - 1 - i)
		bit := (value >> shift) & 1
		b.nodes[i].SetValue(FromBool(bit == 1))
	}
	return nil
}

// Int decodes the bus as a two's-complement integer, position 0 as MSB.
// Unknown bits decode as 0.
func (b *Bus) Int() int64 {
	var acc int64
	n := len(b.nodes)
	for i := 0; i < n; i++ {
		acc <<= 1
		if b.nodes[i].Value() == High {
			acc |= 1
		}
	}
	// sign-extend from bit n-1
	if n < 64 && n > 0 && b.nodes[0].Value() == High {
		acc -= int64(1) << uint(n)
	}
	return acc
}

// String renders the bus's values in positional order, one character
// per node: '0', '1' or '?'.
func (b *Bus) String() string {
	var sb strings.Builder
	for _, node := range b.nodes {
		sb.WriteString(node.Value().String())
	}
	return sb.String()
}

// Clone returns a bus with the same labels and values but entirely
// fresh node identities, used when a sub-block is cloned into a
// parent circuit.
func (b *Bus) Clone() *Bus {
	return b.CloneWith(make(map[uint64]*Node, len(b.nodes)))
}

// CloneWith clones the bus using remap to decide each node's new
// identity: a node already present in remap (by original ID) reuses
// the mapped replacement instead of minting a fresh one. This is how
// circuit.Circuit keeps two sub-blocks' aliased ports pointing at the
// same cloned node after the whole composite is cloned, instead of
// each sub-block silently cloning its own private copy of a shared
// wire.
func (b *Bus) CloneWith(remap map[uint64]*Node) *Bus {
	c := &Bus{
		name:   b.name,
		nodes:  make([]*Node, len(b.nodes)),
		labels: make(map[string]int, len(b.labels)),
		order:  append([]string(nil), b.order...),
	}
	for k, v := range b.labels {
		c.labels[k] = v
	}
	for i, n := range b.nodes {
		c.nodes[i] = CloneNodeWith(n, remap)
	}
	return c
}

// CloneNodeWith returns remap's existing replacement for n if one
// exists, otherwise mints a fresh clone and records it in remap.
func CloneNodeWith(n *Node, remap map[uint64]*Node) *Node {
	if existing, ok := remap[n.ID()]; ok {
		return existing
	}
	cn := n.Clone()
	remap[n.ID()] = cn
	return cn
}
