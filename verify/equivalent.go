// Package verify adds a formal-equivalence check alongside the plain
// enumerative truth-table comparison: exhaustive enumeration is exact
// but only scales to a handful of input bits, so verify also offers a
// SAT-based path for flat gates, compiling a gate.Gate's transistor
// network into CNF and asking github.com/go-air/gini whether any
// input assignment makes two gates disagree on any output. UNSAT of
// that miter proves equivalence for every input, not just the ones
// enumerated.
package verify

import (
	"strconv"

	"github.com/go-air/gini/z"

	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
)

// enumerateLimit bounds how many input bits equivalentEnumerated will brute-force
// before refusing: 2^20 runs is already a few seconds of work, and
// enumeration is only ever meant as a "handful of bits" tool, not a
// scalable one.
const enumerateLimit = 20

// Equivalent reports whether a and b compute the same outputs for
// every possible input assignment. Both parts must have identical
// input and output label sets (in the same positional order) — two
// parts with different interfaces are never equivalent, and it would
// be meaningless to ask. When both a and b are flat *gate.Gate values,
// Equivalent uses the SAT miter; otherwise it falls back to exhaustive
// enumeration, which is only attempted up to enumerateLimit input
// bits.
func Equivalent(a, b gate.Evaluable) (bool, error) {
	if err := sameInterface(a, b); err != nil {
		return false, err
	}

	ga, aIsGate := a.(*gate.Gate)
	gb, bIsGate := b.(*gate.Gate)
	if aIsGate && bIsGate {
		return equivalentSAT(ga, gb)
	}
	return equivalentEnumerated(a, b)
}

func sameInterface(a, b gate.Evaluable) error {
	la, lb := a.Inputs().Labels(), b.Inputs().Labels()
	if len(la) != len(lb) {
		return core.NewError(core.SizeMismatch, a.Name(), "Equivalent",
			"input width "+strconv.Itoa(len(la))+" does not match "+strconv.Itoa(len(lb)))
	}
	for i := range la {
		if la[i] != lb[i] {
			return core.NewError(core.MalformedNetlist, a.Name(), "Equivalent",
				"input label mismatch at position "+strconv.Itoa(i)+": "+la[i]+" vs "+lb[i])
		}
	}
	oa, ob := a.Outputs().Labels(), b.Outputs().Labels()
	if len(oa) != len(ob) {
		return core.NewError(core.SizeMismatch, a.Name(), "Equivalent",
			"output width "+strconv.Itoa(len(oa))+" does not match "+strconv.Itoa(len(ob)))
	}
	for i := range oa {
		if oa[i] != ob[i] {
			return core.NewError(core.MalformedNetlist, a.Name(), "Equivalent",
				"output label mismatch at position "+strconv.Itoa(i)+": "+oa[i]+" vs "+ob[i])
		}
	}
	return nil
}

// equivalentSAT builds the XOR-miter of ga and gb's symbolic
// encodings: one shared set of input variables drives both networks,
// each output pair is XORed, and every XOR is OR'd together. The miter
// is satisfiable exactly when some input makes an output differ, so
// ga and gb are equivalent iff the miter is UNSAT.
func equivalentSAT(ga, gb *gate.Gate) (bool, error) {
	b := newBuilder()
	ea := encodeGate(b, ga)
	eb := encodeGate(b, gb)

	for _, label := range ga.Inputs().Labels() {
		va, aok := ea.inputs[label]
		vb, bok := eb.inputs[label]
		if aok != bok {
			continue // one side froze this input; the other side's free variable can still range, which only weakens (never falsely proves) equivalence
		}
		if aok && bok {
			b.clause(va, vb.Not())
			b.clause(va.Not(), vb)
		}
	}

	var diffs []z.Lit
	for _, label := range ga.Outputs().Labels() {
		diffs = append(diffs, b.xor2(ea.outputs[label], eb.outputs[label]))
	}
	b.assertTrue(b.orN(diffs))

	sat := b.solve()
	return !sat, nil
}
