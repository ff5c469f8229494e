package crosscheck

import (
	"testing"

	"github.com/kegliz/feynmansim/qc/builder"
	"github.com/kegliz/feynmansim/qc/statevec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBellStateMatchesItsubakiOracle(t *testing.T) {
	c, err := builder.New(2).H(0).CX(0, 1).Build()
	require.NoError(t, err)

	want, err := Probabilities(c)
	require.NoError(t, err)

	e := statevec.NewZero[complex128](2, nil)
	require.NoError(t, e.Run(c))
	got := e.Probabilities()

	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestRejectsUnsupportedGate(t *testing.T) {
	c, err := builder.New(1).T(0).Build()
	require.NoError(t, err)
	_, err = Probabilities(c)
	require.Error(t, err)
}
