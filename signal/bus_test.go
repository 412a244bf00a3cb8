package signal_test

import (
	"testing"

	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/stretchr/testify/require"
)

func TestNewBusDefaultsToDescendingLabels(t *testing.T) {
	b := signal.NewBus("in", 4)
	require.Equal(t, []string{"3", "2", "1", "0"}, b.Labels())
}

func TestBusGetUnknownLabel(t *testing.T) {
	b := signal.NewLabeledBus("in", []string{"a", "b"})
	_, err := b.Get("c")
	require.Error(t, err)
	var simErr *core.Error
	require.ErrorAs(t, err, &simErr)
	require.Equal(t, core.UnknownLabel, simErr.Kind)
}

func TestBusLoadIntTwosComplementMSBFirst(t *testing.T) {
	b := signal.NewLabeledBus("a", []string{"3", "2", "1", "0"})
	require.NoError(t, b.LoadInt(5))
	require.Equal(t, "0101", b.String())
	require.EqualValues(t, 5, b.Int())

	require.NoError(t, b.LoadInt(-1))
	require.Equal(t, "1111", b.String())
	require.EqualValues(t, -1, b.Int())

	require.NoError(t, b.LoadInt(-8))
	require.Equal(t, "1000", b.String())
	require.EqualValues(t, -8, b.Int())
}

func TestBusLoadIntRejectsOutOfRange(t *testing.T) {
	b := signal.NewBus("a", 4)
	require.Error(t, b.LoadInt(8))
	require.Error(t, b.LoadInt(-9))
}

func TestBusLoadBusRequiresMatchingWidth(t *testing.T) {
	a := signal.NewBus("a", 4)
	b := signal.NewBus("b", 3)
	require.Error(t, a.LoadBus(b))
}

func TestBusLoadBusCopiesValuesNotIdentity(t *testing.T) {
	a := signal.NewBus("a", 2)
	b := signal.NewBus("b", 2)
	require.NoError(t, b.LoadInt(-2))
	require.NoError(t, a.LoadBus(b))
	require.Equal(t, b.String(), a.String())
	require.NotSame(t, a.At(0), b.At(0))
}

func TestBusCloneWithSharesRemappedNodes(t *testing.T) {
	a := signal.NewLabeledBus("p", []string{"x", "y"})
	shared := a.At(0)
	remap := map[uint64]*signal.Node{}
	cloneA := a.CloneWith(remap)

	other := signal.NewLabeledBus("q", []string{"z"})
	require.NoError(t, other.LoadNodes([]*signal.Node{shared}))
	cloneOther := other.CloneWith(remap)

	require.Same(t, cloneA.At(0), cloneOther.At(0))
}

func TestBusSetLabelsRejectsWidthMismatch(t *testing.T) {
	b := signal.NewBus("a", 2)
	require.Error(t, b.SetLabels([]string{"x", "y", "z"}))
}

func TestBusSetLabelsRejectsDuplicates(t *testing.T) {
	b := signal.NewBus("a", 2)
	require.Error(t, b.SetLabels([]string{"x", "x"}))
}
