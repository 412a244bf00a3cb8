package verify_test

import (
	"testing"

	"github.com/iperetta/ECS-Simulator/catalog"
	"github.com/iperetta/ECS-Simulator/gate"
	"github.com/iperetta/ECS-Simulator/verify"
	"github.com/stretchr/testify/require"
)

// reversedNand wires the same two-transistor series chain as
// catalog.Nand with the chain order swapped: b's transistor sits on the
// VCC side and a's on the GND side. A structurally different netlist
// computing the same function, which is what the miter has to prove.
func reversedNand() *gate.Gate {
	g := gate.New("reversed-nand", 2, []string{"a", "b"}, []string{"z"})
	_ = g.SetAsVCC(0, "C")
	_ = g.SetAsGND(1, "E")
	_ = g.Connect(0, "E", 1, "C")
	_ = g.SetAsInput(0, "B", "b")
	_ = g.SetAsInput(1, "B", "a")
	_ = g.SetAsOutput(0, "C", "z")
	return g
}

func TestEquivalentSATAcceptsIdenticalGate(t *testing.T) {
	ok, err := verify.Equivalent(catalog.Nand(), catalog.Nand())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEquivalentSATProvesReversedNandMatchesCatalogNand(t *testing.T) {
	ok, err := verify.Equivalent(catalog.Nand(), reversedNand())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEquivalentSATRejectsNandVsAnd(t *testing.T) {
	ok, err := verify.Equivalent(catalog.Nand(), catalog.And())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEquivalentRejectsMismatchedInterface(t *testing.T) {
	_, err := verify.Equivalent(catalog.Nand(), catalog.And4way())
	require.Error(t, err)
}

func TestEquivalentEnumeratedAcceptsCircuitAgainstItsOwnClone(t *testing.T) {
	h := catalog.HalfAdder()
	ok, err := verify.Equivalent(h, h.Clone())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEquivalentEnumeratedRejectsHalfAdderVsAdd16(t *testing.T) {
	_, err := verify.Equivalent(catalog.HalfAdder(), catalog.Add16())
	require.Error(t, err)
}
