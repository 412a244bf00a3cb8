// Package signal provides the Node and Bus primitives every transistor,
// gate and circuit is built from. A Node carries a tri-state value and a
// stable identity; a Bus is an ordered, labeled vector of Nodes.
package signal

// Value is the tri-state a Node can carry. Unknown is the reset default
// and the value of any node whose driving sub-network cannot be
// resolved to a clean HIGH or LOW during a Run.
type Value int8

const (
	Unknown Value = iota
	Low
	High
)

func (v Value) String() string {
	switch v {
	case Low:
		return "0"
	case High:
		return "1"
	default:
		return "?"
	}
}

// Bool reports whether v is High. Unknown and Low both read as false;
// callers that need to distinguish Unknown from Low must compare Value
// directly.
func (v Value) Bool() bool { return v == High }

// FromBool converts a plain boolean into a tri-state Value.
func FromBool(b bool) Value {
	if b {
		return High
	}
	return Low
}
