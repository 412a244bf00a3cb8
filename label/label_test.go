package label_test

import (
	"testing"

	"github.com/iperetta/ECS-Simulator/label"
	"github.com/stretchr/testify/require"
)

func TestSequenceDescendsByDefault(t *testing.T) {
	require.Equal(t, []string{"in3", "in2", "in1", "in0"}, label.Sequence("in", 4))
}

func TestSequenceAlphabeticForAtPrefix(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c", "d"}, label.Sequence("@", 4))
}

func TestSequenceAlphabeticFallsBackPastTwentySix(t *testing.T) {
	out := label.Sequence("@", 30)
	require.Len(t, out, 30)
	require.Equal(t, "in29", out[0])
	require.Equal(t, "in0", out[29])
}

func TestSequenceEscapedAtPrefix(t *testing.T) {
	require.Equal(t, []string{"@3", "@2", "@1", "@0"}, label.Sequence(`\@`, 4))
}
