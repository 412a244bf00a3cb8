package catalog_test

import (
	"strconv"
	"testing"

	"github.com/iperetta/ECS-Simulator/catalog"
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/stretchr/testify/require"
)

func setIn(t *testing.T, g *gate.Gate, values map[string]signal.Value) {
	t.Helper()
	for label, v := range values {
		n, err := g.Inputs().Get(label)
		require.NoError(t, err)
		n.SetValue(v)
	}
}

func outVal(t *testing.T, g *gate.Gate, label string) signal.Value {
	t.Helper()
	n, err := g.Outputs().Get(label)
	require.NoError(t, err)
	return n.Value()
}

func TestNandTruthTable(t *testing.T) {
	n := catalog.Nand()
	table := []struct{ a, b, z signal.Value }{
		{signal.Low, signal.Low, signal.High},
		{signal.Low, signal.High, signal.High},
		{signal.High, signal.Low, signal.High},
		{signal.High, signal.High, signal.Low},
	}
	for _, c := range table {
		setIn(t, n, map[string]signal.Value{"a": c.a, "b": c.b})
		require.NoError(t, n.Run(core.PhaseLow))
		require.Equalf(t, c.z, outVal(t, n, "z"), "a=%v b=%v", c.a, c.b)
	}
}

func TestNorTruthTable(t *testing.T) {
	n := catalog.Nor()
	table := []struct{ a, b, z signal.Value }{
		{signal.Low, signal.Low, signal.High},
		{signal.Low, signal.High, signal.Low},
		{signal.High, signal.Low, signal.Low},
		{signal.High, signal.High, signal.Low},
	}
	for _, c := range table {
		setIn(t, n, map[string]signal.Value{"a": c.a, "b": c.b})
		require.NoError(t, n.Run(core.PhaseLow))
		require.Equalf(t, c.z, outVal(t, n, "out"), "a=%v b=%v", c.a, c.b)
	}
}

func TestAnd4wayRequiresAllFourHigh(t *testing.T) {
	g := catalog.And4way()
	allHigh := map[string]signal.Value{"a": signal.High, "b": signal.High, "c": signal.High, "d": signal.High}
	setIn(t, g, allHigh)
	require.NoError(t, g.Run(core.PhaseLow))
	require.Equal(t, signal.High, outVal(t, g, "z"))

	setIn(t, g, map[string]signal.Value{"a": signal.Low})
	require.NoError(t, g.Run(core.PhaseLow))
	require.Equal(t, signal.Low, outVal(t, g, "z"))
}

func TestOr8wayHighIfAnyInputHigh(t *testing.T) {
	g := catalog.Or8way()
	for i := 0; i < 8; i++ {
		n, err := g.Inputs().Get("in" + string(rune('0'+i)))
		require.NoError(t, err)
		n.SetValue(signal.Low)
	}
	require.NoError(t, g.Run(core.PhaseLow))
	require.Equal(t, signal.Low, outVal(t, g, "out"))

	n, err := g.Inputs().Get("in5")
	require.NoError(t, err)
	n.SetValue(signal.High)
	require.NoError(t, g.Run(core.PhaseLow))
	require.Equal(t, signal.High, outVal(t, g, "out"))
}

func TestXnorTruthTable(t *testing.T) {
	x := catalog.Xnor()
	table := []struct{ a, b, z signal.Value }{
		{signal.Low, signal.Low, signal.High},
		{signal.Low, signal.High, signal.Low},
		{signal.High, signal.Low, signal.Low},
		{signal.High, signal.High, signal.High},
	}
	for _, c := range table {
		setLabel(t, x, "a", c.a)
		setLabel(t, x, "b", c.b)
		require.NoError(t, x.Run(core.PhaseLow))
		require.Equalf(t, c.z, outLabel(t, x, "z"), "a=%v b=%v", c.a, c.b)
	}
}

func TestMux4waySelectsAmongFour(t *testing.T) {
	m := catalog.Mux4way()
	setLabel(t, m, "a", signal.High)
	setLabel(t, m, "b", signal.Low)
	setLabel(t, m, "c", signal.Low)
	setLabel(t, m, "d", signal.High)

	setLabel(t, m, "sel1", signal.Low)
	setLabel(t, m, "sel0", signal.Low)
	require.NoError(t, m.Run(core.PhaseLow))
	require.Equal(t, signal.High, outLabel(t, m, "out"))

	setLabel(t, m, "sel1", signal.High)
	setLabel(t, m, "sel0", signal.High)
	require.NoError(t, m.Run(core.PhaseLow))
	require.Equal(t, signal.High, outLabel(t, m, "out"))

	setLabel(t, m, "sel1", signal.Low)
	setLabel(t, m, "sel0", signal.High)
	require.NoError(t, m.Run(core.PhaseLow))
	require.Equal(t, signal.Low, outLabel(t, m, "out"))
}

func TestMux16PerBitSelection(t *testing.T) {
	m := catalog.Mux16()
	for i := 0; i < 16; i++ {
		setLabel(t, m, "a"+strconv.Itoa(i), signal.High)
		setLabel(t, m, "b"+strconv.Itoa(i), signal.Low)
	}
	setLabel(t, m, "sel", signal.Low)
	require.NoError(t, m.Run(core.PhaseLow))
	for i := 0; i < 16; i++ {
		require.Equalf(t, signal.High, outLabel(t, m, "out"+strconv.Itoa(i)), "bit %d", i)
	}

	setLabel(t, m, "sel", signal.High)
	require.NoError(t, m.Run(core.PhaseLow))
	for i := 0; i < 16; i++ {
		require.Equalf(t, signal.Low, outLabel(t, m, "out"+strconv.Itoa(i)), "bit %d", i)
	}
}
