// Package circuit implements the composite block: a circuit owns no
// transistors of its own, only a list of sub-blocks (each a gate.Gate
// or another *Circuit) wired together, and a scheduler.Graph recording
// which sub-block depends on which.
//
// Wiring is recorded as bindings, not as shared node identity: Connect
// and SetAsInput/SetAsOutput each record a (source node, destination
// port) pair. Run copies a binding's source value into its destination
// immediately before the destination's owning block executes, in
// schedule order, so every destination sees its driver's final value
// for that pass.
//
// SetAsClock marks a sub-block input port as clock-gated: whatever
// value that port would otherwise carry is ANDed with the phase Run is
// called with before the sub-block executes. The catalog's Dff ties
// one leg of each of its two AND gates through SetAsClock rather than
// wiring a literal transistor network for the clock line itself —
// the clock is an externally supplied scalar, not a modeled buffer.
package circuit

import (
	"strconv"

	"github.com/go-logr/logr"

	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
	"github.com/iperetta/ECS-Simulator/scheduler"
	"github.com/iperetta/ECS-Simulator/signal"
)

// inputBinding copies src's value into sub-block `block`'s input port
// `label` immediately before that block runs.
type inputBinding struct {
	block int
	label string
	src   *signal.Node
}

// outputBinding copies src's value into the circuit's own output port
// `label` after every sub-block has run.
type outputBinding struct {
	label string
	src   *signal.Node
}

// Circuit is a composite block built from named sub-blocks wired
// together through Connect and SetAsInput/SetAsOutput.
type Circuit struct {
	name    string
	inputs  *signal.Bus
	outputs *signal.Bus

	blocks []gate.Evaluable
	deps   *scheduler.Graph
	order  []int // declaration-order indices, ascending by level; set by Schedule

	inBindings  []inputBinding
	outBindings []outputBinding
	// groupBindings is (re)built by Schedule from extBound and the
	// portGroups union-find: it carries an external input's value to
	// every sub-block input port declared as its peer via
	// Connect(aIn, bIn), e.g. Or.a picking up the same source as
	// Nand.a in the Xor composition, the rule that two sub-block
	// inputs wired to the same external source share one driving node,
	// without either of them holding a direct binding of their own.
	groupBindings []inputBinding

	// extBound records the external input node bound directly to a
	// sub-block port by SetAsInput, keyed by portKey. portGroups unions
	// sub-block ports declared as same-level peers by Connect(aIn,
	// bIn); Schedule resolves each group's driver (if any) and expands
	// it into groupBindings for every member.
	extBound    map[string]*signal.Node
	portGroups  *unionFind
	portGroupOf []string // every portKey ever mentioned, for Schedule to iterate

	// gated records, per sub-block index, the input ports marked by
	// SetAsClock: Run ANDs each such port's value with the current
	// clock phase immediately before that sub-block executes.
	gated map[int][]string

	// ops is the designer-API call log, replayed by Rebuild to restore
	// a persisted circuit, see snapshot.go. Add/AddMany are not
	// logged here; the sub-blocks they produce are persisted directly
	// as Snapshot.Blocks, in declaration order.
	ops []Op

	// log traces sub-block execution order during Run at increasing
	// verbosity; it defaults to logr.Discard() so a Circuit
	// never pays for tracing unless a caller opts in with SetLogger.
	log logr.Logger
}

// SetLogger attaches a structured logger Run will trace sub-block
// execution through, by sub-block index and position in the run order, one
// V(1) line per sub-block per Run. A composite's sub-blocks are not
// given the logger themselves; tracing a nested circuit.Circuit
// sub-block's own Run requires SetLogger on that sub-block directly.
func (c *Circuit) SetLogger(l logr.Logger) { c.log = l }

func (c *Circuit) record(op Op) { c.ops = append(c.ops, op) }

func portKey(idx int, label string) string {
	return strconv.Itoa(idx) + ":" + label
}

// New builds an empty composite named name with the given boundary
// labels. Wire sub-blocks in with Add, then Connect/SetAsInput/
// SetAsOutput, then call Schedule once before the first Run.
func New(name string, inputLabels, outputLabels []string) *Circuit {
	return &Circuit{
		name:       name,
		inputs:     signal.NewLabeledBus("in", inputLabels),
		outputs:    signal.NewLabeledBus("out", outputLabels),
		deps:       scheduler.New(),
		gated:      make(map[int][]string),
		extBound:   make(map[string]*signal.Node),
		portGroups: newUnionFind(),
		log:        logr.Discard(),
	}
}

func (c *Circuit) Name() string         { return c.name }
func (c *Circuit) Inputs() *signal.Bus  { return c.inputs }
func (c *Circuit) Outputs() *signal.Bus { return c.outputs }
func (c *Circuit) IsInput(l string) bool {
	return c.inputs.HasLabel(l)
}
func (c *Circuit) IsOutput(l string) bool { return c.outputs.HasLabel(l) }

// Add appends a sub-block (already fully built), cloning it so the
// circuit owns an independent instance even if the same part is added
// more than once. It returns the index used to address the new
// instance from Connect/SetAsInput/SetAsOutput/SetAsClock.
func (c *Circuit) Add(block gate.Evaluable) int {
	idx := len(c.blocks)
	c.blocks = append(c.blocks, block.Clone())
	return idx
}

// AddMany appends count independent clones of block, returning their
// indices in declaration order.
func (c *Circuit) AddMany(block gate.Evaluable, count int) []int {
	idxs := make([]int, count)
	for i := range idxs {
		idxs[i] = c.Add(block)
	}
	return idxs
}

// Block returns sub-block idx, for catalog builders that need to reach
// into a previously added part (e.g. to read its output bus directly).
func (c *Circuit) Block(idx int) gate.Evaluable { return c.blocks[idx] }

// key returns the scheduler graph vertex for sub-block idx. It must be
// unique per sub-block instance, not per part name: two instances of
// the same catalog part (e.g. two Bits in a Register) would otherwise
// collide onto a single scheduler vertex.
func (c *Circuit) key(idx int) string { return strconv.Itoa(idx) }

func (c *Circuit) SetHighInput(label string) error {
	n, err := c.inputs.Get(label)
	if err != nil {
		return err
	}
	n.Freeze(signal.High)
	return nil
}

func (c *Circuit) SetLowInput(label string) error {
	n, err := c.inputs.Get(label)
	if err != nil {
		return err
	}
	n.Freeze(signal.Low)
	return nil
}

// SetAsInput binds sub-block idx's input port to the circuit's own
// input node at label: every Run copies the circuit's input value into
// that port right before idx executes. idx is also recorded as a
// dependency child of the circuit's own boundary.
func (c *Circuit) SetAsInput(label string, idx int, subLabel string) error {
	n, err := c.inputs.Get(label)
	if err != nil {
		return err
	}
	if !c.blocks[idx].IsInput(subLabel) {
		return core.NewError(core.MalformedNetlist, c.name, "SetAsInput",
			subLabel+" is not an input of sub-block "+strconv.Itoa(idx))
	}
	key := portKey(idx, subLabel)
	c.inBindings = append(c.inBindings, inputBinding{block: idx, label: subLabel, src: n})
	c.extBound[key] = n
	c.portGroupOf = append(c.portGroupOf, key)
	c.deps.AddChild(scheduler.Root(), c.key(idx))
	c.record(Op{Kind: "input", Label: label, Idx: idx, SubLabel: subLabel})
	return nil
}

// SetAsOutput binds the circuit's own output node at label to
// sub-block idx's output port: every Run copies that port's value into
// the circuit's output once every sub-block has executed.
func (c *Circuit) SetAsOutput(idx int, subLabel string, label string) error {
	if !c.blocks[idx].IsOutput(subLabel) {
		return core.NewError(core.MalformedNetlist, c.name, "SetAsOutput",
			subLabel+" is not an output of sub-block "+strconv.Itoa(idx))
	}
	n, err := c.blocks[idx].Outputs().Get(subLabel)
	if err != nil {
		return err
	}
	if _, err := c.outputs.Get(label); err != nil {
		return err
	}
	c.outBindings = append(c.outBindings, outputBinding{label: label, src: n})
	c.record(Op{Kind: "output", Idx: idx, SubLabel: subLabel, Label: label})
	return nil
}

// SetAsClock marks sub-block idx's input port as clock-gated: see the
// Circuit doc comment. It may be called more than once for the same
// port without effect, and more than once for different ports of the
// same sub-block.
func (c *Circuit) SetAsClock(idx int, port string) error {
	if !c.blocks[idx].IsInput(port) {
		return core.NewError(core.MalformedNetlist, c.name, "SetAsClock",
			port+" is not an input of sub-block "+strconv.Itoa(idx))
	}
	for _, p := range c.gated[idx] {
		if p == port {
			return nil
		}
	}
	c.gated[idx] = append(c.gated[idx], port)
	c.record(Op{Kind: "clock", Idx: idx, SubLabel: port})
	return nil
}

// SetAsHighInput permanently forces sub-block idx's input port to HIGH,
// the composite-level counterpart of Gate.SetHighInput: used to wire a
// literal constant straight onto a sub-block's own port (Inc16's "+1"
// operand) without exposing it as one of the circuit's own boundary
// inputs.
func (c *Circuit) SetAsHighInput(idx int, port string) error {
	if err := c.blocks[idx].SetHighInput(port); err != nil {
		return err
	}
	c.record(Op{Kind: "high", Idx: idx, SubLabel: port})
	return nil
}

// SetAsLowInput permanently forces sub-block idx's input port to LOW,
// see SetAsHighInput.
func (c *Circuit) SetAsLowInput(idx int, port string) error {
	if err := c.blocks[idx].SetLowInput(port); err != nil {
		return err
	}
	c.record(Op{Kind: "low", Idx: idx, SubLabel: port})
	return nil
}

// Connect wires sub-block a's port to sub-block b's port. Exactly one
// side must be an output and the other an input; output-to-output is
// a malformed netlist. input-to-input is a fan-out declaration: the two
// ports are unioned into one driver group (see resolveInputGroups) and
// scheduled as same-level peers; whichever member of the group, if any,
// is later bound to an external input by SetAsInput drives every other
// member too, as if both pins sat on the same physical node.
func (c *Circuit) Connect(a int, portA string, b int, portB string) error {
	aOut, aIn := c.blocks[a].IsOutput(portA), c.blocks[a].IsInput(portA)
	bOut, bIn := c.blocks[b].IsOutput(portB), c.blocks[b].IsInput(portB)

	switch {
	case aOut && bIn:
		n, err := c.blocks[a].Outputs().Get(portA)
		if err != nil {
			return err
		}
		c.inBindings = append(c.inBindings, inputBinding{block: b, label: portB, src: n})
		c.deps.AddChild(c.key(a), c.key(b))
	case aIn && bOut:
		n, err := c.blocks[b].Outputs().Get(portB)
		if err != nil {
			return err
		}
		c.inBindings = append(c.inBindings, inputBinding{block: a, label: portA, src: n})
		c.deps.AddChild(c.key(b), c.key(a))
	case aIn && bIn:
		keyA, keyB := portKey(a, portA), portKey(b, portB)
		c.portGroups.union(keyA, keyB)
		c.portGroupOf = append(c.portGroupOf, keyA, keyB)
		c.deps.AddPeer(c.key(a), c.key(b))
	case aOut && bOut:
		return core.NewError(core.MalformedNetlist, c.name, "Connect",
			"cannot wire two outputs together: sub-block "+strconv.Itoa(a)+"."+portA+" and sub-block "+strconv.Itoa(b)+"."+portB)
	default:
		return core.NewError(core.MalformedNetlist, c.name, "Connect", "unrecognized port pairing")
	}
	c.record(Op{Kind: "connect", Idx: a, SubLabel: portA, IdxB: b, PortB: portB})
	return nil
}

// Schedule finalizes sub-block run order: cross-coupled pairs are
// promoted from a mutual-child cycle to same-level peers, then every
// block's dependency level is computed and blocks are sorted ascending
// by level, declaration order breaking ties within a level. It also
// rejects an output label that Run would never write, since that is a
// dangling boundary rather than a legitimate always-Unknown signal.
func (c *Circuit) Schedule() error {
	for _, label := range c.outputs.Labels() {
		bound := false
		for _, b := range c.outBindings {
			if b.label == label {
				bound = true
				break
			}
		}
		if !bound {
			return core.NewError(core.MalformedNetlist, c.name, "Schedule", "output "+label+" is never driven")
		}
	}
	c.resolveInputGroups()

	c.deps.PromoteCycles()
	levels := c.deps.Levels()

	order := make([]int, len(c.blocks))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && levels[c.key(order[j-1])] > levels[c.key(order[j])] {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
	c.order = order
	return nil
}

// resolveInputGroups expands every peer group of sub-block input ports
// (recorded by Connect(aIn, bIn)) that has an externally-bound driver
// into a direct binding for every member, see groupBindings: two
// sub-block inputs wired to the same external source share one
// driving node. A group with no bound driver is left alone; its ports
// simply stay Unknown, the same as any undriven changeable node.
func (c *Circuit) resolveInputGroups() {
	driverOf := make(map[string]*signal.Node)
	for key, n := range c.extBound {
		root := c.portGroups.find(key)
		if _, ok := driverOf[root]; !ok {
			driverOf[root] = n
		}
	}
	c.groupBindings = nil
	seen := make(map[string]bool, len(c.portGroupOf))
	for _, key := range c.portGroupOf {
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, alreadyDirect := c.extBound[key]; alreadyDirect {
			continue
		}
		src, ok := driverOf[c.portGroups.find(key)]
		if !ok {
			continue
		}
		idx, label := splitPortKey(key)
		c.groupBindings = append(c.groupBindings, inputBinding{block: idx, label: label, src: src})
	}
}

func splitPortKey(key string) (int, string) {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			idx, _ := strconv.Atoi(key[:i])
			return idx, key[i+1:]
		}
	}
	return -1, ""
}

// Clone returns a composite with the same sub-blocks, wiring and
// schedule but entirely fresh node identity throughout, including
// across sub-block boundaries: two ports bound through the same
// original node are bound through the same cloned node in the copy.
func (c *Circuit) Clone() gate.Evaluable {
	return c.CloneWith(make(map[uint64]*signal.Node))
}

func (c *Circuit) CloneWith(remap map[uint64]*signal.Node) gate.Evaluable {
	clone := &Circuit{
		name:        c.name,
		deps:        c.deps,
		order:       append([]int(nil), c.order...),
		gated:       make(map[int][]string, len(c.gated)),
		extBound:    make(map[string]*signal.Node, len(c.extBound)),
		portGroups:  c.portGroups,
		portGroupOf: append([]string(nil), c.portGroupOf...),
		ops:         append([]Op(nil), c.ops...),
		log:         logr.Discard(),
	}
	for idx, ports := range c.gated {
		clone.gated[idx] = append([]string(nil), ports...)
	}
	for _, b := range c.blocks {
		clone.blocks = append(clone.blocks, b.CloneWith(remap))
	}
	clone.inputs = c.inputs.CloneWith(remap)
	clone.outputs = c.outputs.CloneWith(remap)

	for _, bnd := range c.inBindings {
		clone.inBindings = append(clone.inBindings, inputBinding{
			block: bnd.block, label: bnd.label, src: signal.CloneNodeWith(bnd.src, remap),
		})
	}
	for _, bnd := range c.outBindings {
		clone.outBindings = append(clone.outBindings, outputBinding{
			label: bnd.label, src: signal.CloneNodeWith(bnd.src, remap),
		})
	}
	for _, bnd := range c.groupBindings {
		clone.groupBindings = append(clone.groupBindings, inputBinding{
			block: bnd.block, label: bnd.label, src: signal.CloneNodeWith(bnd.src, remap),
		})
	}
	for key, n := range c.extBound {
		clone.extBound[key] = signal.CloneNodeWith(n, remap)
	}
	return clone
}

var _ gate.Evaluable = (*Circuit)(nil)
