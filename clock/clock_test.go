package clock_test

import (
	"testing"

	"github.com/iperetta/ECS-Simulator/clock"
	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/stretchr/testify/require"
)

func TestSourceStartsLowAndToggles(t *testing.T) {
	s := clock.NewSource()
	require.Equal(t, clock.Low, s.Phase())
	require.Equal(t, clock.High, s.Tick())
	require.Equal(t, clock.High, s.Phase())
	require.Equal(t, clock.Low, s.Tick())
}

func TestGateMasksByPhase(t *testing.T) {
	require.Equal(t, signal.High, clock.Gate(signal.High, clock.High))
	require.Equal(t, signal.Low, clock.Gate(signal.High, clock.Low))
	require.Equal(t, signal.Low, clock.Gate(signal.Low, clock.High))
}
