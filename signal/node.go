package signal

import (
	"strconv"
	"sync/atomic"
)

var nextID uint64

// NewNode mints a Node with a fresh, process-wide monotonic identity.
// Identity is never derived from value or position: two nodes that
// happen to carry the same value are still distinct nodes, and a node's
// ID never changes across Run calls.
func NewNode(changeable bool) *Node {
	id := atomic.AddUint64(&nextID, 1)
	return &Node{id: id, value: Unknown, changeable: changeable}
}

// NewConstant mints a non-changeable Node fixed at v, as used for the
// VCC/GND rails. Forced-constant ports are made with Freeze instead.
func NewConstant(v Value) *Node {
	n := NewNode(false)
	n.value = v
	return n
}

// Node is a single wire endpoint: a stable identity, a tri-state value,
// and a flag marking whether Reset is allowed to clear it. VCC, GND and
// forced-constant ports are not changeable.
type Node struct {
	id         uint64
	value      Value
	changeable bool
}

// ID returns the node's stable identity, also used as its vertex key in
// the owning Gate's adjacency graph.
func (n *Node) ID() uint64 { return n.id }

// VertexID renders the node's identity as a graph vertex key.
func (n *Node) VertexID() string { return strconv.FormatUint(n.id, 10) }

func (n *Node) Value() Value { return n.value }

func (n *Node) SetValue(v Value) {
	if !n.changeable {
		return
	}
	n.value = v
}

// Force sets the value of the node regardless of its changeable flag,
// leaving the flag itself as it is.
func (n *Node) Force(v Value) { n.value = v }

func (n *Node) Changeable() bool { return n.changeable }

// Freeze fixes the node at v and marks it non-changeable, turning an
// ordinary input port into a forced constant (see Gate.SetHighInput and
// Gate.SetLowInput).
func (n *Node) Freeze(v Value) {
	n.value = v
	n.changeable = false
}

// Reset clears the node back to Unknown, unless it is a constant.
func (n *Node) Reset() {
	if n.changeable {
		n.value = Unknown
	}
}

// Clone returns a node with the same value and changeable flag but a
// fresh identity: composition never shares node identity across a
// parent and its sub-blocks, see circuit.Circuit's clone-not-share rule.
func (n *Node) Clone() *Node {
	c := NewNode(n.changeable)
	c.value = n.value
	return c
}
