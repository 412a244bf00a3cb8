package core_test

import (
	"testing"

	"github.com/iperetta/ECS-Simulator/core"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageNamesBlockAndOp(t *testing.T) {
	err := core.NewError(core.SizeMismatch, "Add16", "Connect", "width mismatch")
	require.Contains(t, err.Error(), "Add16")
	require.Contains(t, err.Error(), "Connect")
	require.Contains(t, err.Error(), "size mismatch")
}

func TestErrorMessageWithoutBlock(t *testing.T) {
	err := core.NewError(core.PersistenceFailure, "", "Load", "missing file")
	require.NotContains(t, err.Error(), "..")
	require.Contains(t, err.Error(), "persistence failure")
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "LOW", core.PhaseLow.String())
	require.Equal(t, "HIGH", core.PhaseHigh.String())
}
