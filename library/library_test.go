package library_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iperetta/ECS-Simulator/catalog"
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
	"github.com/iperetta/ECS-Simulator/library"
	"github.com/iperetta/ECS-Simulator/signal"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadGateRoundTrips(t *testing.T) {
	lib := library.New(t.TempDir())
	and := catalog.And()
	require.NoError(t, lib.Save("And", and))
	require.True(t, lib.Exists("And"))
	require.True(t, lib.Exists("And.sim"))

	loaded, err := lib.Load("And")
	require.NoError(t, err)

	for _, a := range []signal.Value{signal.Low, signal.High} {
		for _, b := range []signal.Value{signal.Low, signal.High} {
			setAB(t, and, a, b)
			setAB(t, loaded.(*gate.Gate), a, b)
			require.NoError(t, and.Run(core.PhaseLow))
			require.NoError(t, loaded.Run(core.PhaseLow))
			gotOrig, _ := and.Outputs().Get("z")
			gotLoaded, _ := loaded.Outputs().Get("z")
			require.Equal(t, gotOrig.Value(), gotLoaded.Value())
		}
	}
}

func setAB(t *testing.T, g *gate.Gate, a, b signal.Value) {
	t.Helper()
	na, err := g.Inputs().Get("a")
	require.NoError(t, err)
	nb, err := g.Inputs().Get("b")
	require.NoError(t, err)
	na.SetValue(a)
	nb.SetValue(b)
}

func TestSaveLoadCircuitRoundTrips(t *testing.T) {
	lib := library.New(t.TempDir())
	mux := catalog.Mux()
	require.NoError(t, lib.Save("mux", mux))

	loaded, err := lib.Load("mux")
	require.NoError(t, err)
	if diff := cmp.Diff(mux.Inputs().Labels(), loaded.Inputs().Labels()); diff != "" {
		t.Fatalf("reloaded input labels diverged from original (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mux.Outputs().Labels(), loaded.Outputs().Labels()); diff != "" {
		t.Fatalf("reloaded output labels diverged from original (-want +got):\n%s", diff)
	}

	for _, a := range []signal.Value{signal.Low, signal.High} {
		for _, sel := range []signal.Value{signal.Low, signal.High} {
			na, _ := loaded.Inputs().Get("a")
			nb, _ := loaded.Inputs().Get("b")
			ns, _ := loaded.Inputs().Get("sel")
			na.SetValue(a)
			nb.SetValue(signal.Low)
			ns.SetValue(sel)
			require.NoError(t, loaded.Run(core.PhaseLow))
			out, _ := loaded.Outputs().Get("out")
			want := a
			if sel == signal.High {
				want = signal.Low
			}
			require.Equal(t, want, out.Value())
		}
	}
}

func TestLoadMissingNameFails(t *testing.T) {
	lib := library.New(t.TempDir())
	_, err := lib.Load("nope")
	require.Error(t, err)
	var simErr *core.Error
	require.ErrorAs(t, err, &simErr)
	require.Equal(t, core.PersistenceFailure, simErr.Kind)
}
