package transistor_test

import (
	"testing"

	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/iperetta/ECS-Simulator/transistor"
	"github.com/stretchr/testify/require"
)

func TestBridgeTracksBaseValue(t *testing.T) {
	b := signal.NewNode(true)
	c := signal.NewNode(true)
	e := signal.NewNode(true)
	q := transistor.New(b, c, e)

	b.SetValue(signal.Low)
	q.Logic()
	require.False(t, q.Bridge())

	b.SetValue(signal.High)
	q.Logic()
	require.True(t, q.Bridge())

	b.SetValue(signal.Unknown)
	q.Logic()
	require.False(t, q.Bridge())
}

func TestCloneWiresToGivenTerminals(t *testing.T) {
	b, c, e := signal.NewNode(true), signal.NewNode(true), signal.NewNode(true)
	q := transistor.New(b, c, e)

	nb, nc, ne := signal.NewNode(true), signal.NewNode(true), signal.NewNode(true)
	clone := q.Clone(nb, nc, ne)

	require.Same(t, nb, clone.B)
	require.Same(t, nc, clone.C)
	require.Same(t, ne, clone.E)
}
