package feynman

import (
	"testing"

	"github.com/kegliz/feynmansim/qc/builder"
	"github.com/kegliz/feynmansim/qc/statevec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bigMemory = uint64(1) << 40

func TestSelectCutPrefersFewerCrossGates(t *testing.T) {
	c, err := builder.New(4).H(0).H(1).H(2).H(3).CZ(1, 2).Build()
	require.NoError(t, err)
	cut, xcz, err := SelectCut[complex128](c, bigMemory)
	require.NoError(t, err)
	// CZ(1,2) straddles only cut 2; cuts 1 and 3 have no cross gate, and
	// the tie goes to the smaller cut index.
	assert.Equal(t, 1, cut)
	assert.Equal(t, 0, xcz)
}

func TestSelectCutRejectsCrossingCX(t *testing.T) {
	c, err := builder.New(4).H(0).CX(1, 2).Build()
	require.NoError(t, err)
	_, _, err = SelectCut[complex128](c, bigMemory)
	require.Error(t, err)
}

func TestRunFlatMatchesSchrodingerOnCrossCZ(t *testing.T) {
	c, err := builder.New(4).H(0).H(1).H(2).H(3).CZ(1, 2).Build()
	require.NoError(t, err)

	e := statevec.NewZero[complex128](4, nil)
	require.NoError(t, e.Run(c))

	fe, err := NewEngine[complex128](c, 1.0, bigMemory, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, fe.NumXCZ)

	indices := make([]uint64, 16)
	for i := range indices {
		indices[i] = uint64(i)
	}
	amps, err := fe.RunFlat(indices)
	require.NoError(t, err)

	for _, idx := range indices {
		assert.InDelta(t, real(e.Wave[idx]), real(amps[idx]), 1e-9, "index %d", idx)
		assert.InDelta(t, imag(e.Wave[idx]), imag(amps[idx]), 1e-9, "index %d", idx)
	}
}

func TestRunRecursiveMatchesRunFlat(t *testing.T) {
	c, err := builder.New(4).H(0).H(1).H(2).H(3).CZ(1, 2).CZ(0, 3).Build()
	require.NoError(t, err)

	fe, err := NewEngine[complex128](c, 1.0, bigMemory, 2, nil)
	require.NoError(t, err)

	indices := []uint64{0, 3, 5, 10, 15}
	flat, err := fe.RunFlat(indices)
	require.NoError(t, err)
	rec, err := fe.RunRecursive(indices)
	require.NoError(t, err)

	for _, idx := range indices {
		assert.InDelta(t, real(flat[idx]), real(rec[idx]), 1e-9)
		assert.InDelta(t, imag(flat[idx]), imag(rec[idx]), 1e-9)
	}
}

func TestNewEngineRejectsCutOutOfRange(t *testing.T) {
	c, err := builder.New(3).H(0).Build()
	require.NoError(t, err)
	_, err = NewEngine[complex128](c, 1.0, bigMemory, 3, nil)
	require.Error(t, err)
}

func TestNewEngineRejectsBadFidelity(t *testing.T) {
	c, err := builder.New(3).H(0).Build()
	require.NoError(t, err)
	_, err = NewEngine[complex128](c, 0, bigMemory, 1, nil)
	require.Error(t, err)
}
