package statevec

import (
	"math"
	"testing"

	"github.com/kegliz/feynmansim/qc/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probsSumToOne(t *testing.T, probs []float64) {
	t.Helper()
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSingleHadamard(t *testing.T) {
	c, err := builder.New(1).H(0).Build()
	require.NoError(t, err)
	e := NewZero[complex128](1, nil)
	require.NoError(t, e.Run(c))
	probs := e.Probabilities()
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)
}

func TestBellState(t *testing.T) {
	c, err := builder.New(2).H(0).CX(0, 1).Build()
	require.NoError(t, err)
	e := NewZero[complex128](2, nil)
	require.NoError(t, e.Run(c))
	probs := e.Probabilities()
	assert.InDelta(t, 0.5, probs[0], 1e-9) // |00>
	assert.InDelta(t, 0.0, probs[1], 1e-9) // |01>
	assert.InDelta(t, 0.0, probs[2], 1e-9) // |10>
	assert.InDelta(t, 0.5, probs[3], 1e-9) // |11>
	probsSumToOne(t, probs)
}

func TestCZPhase(t *testing.T) {
	c, err := builder.New(2).H(0).H(1).CZ(0, 1).Build()
	require.NoError(t, err)
	e := NewZero[complex128](2, nil)
	require.NoError(t, e.Run(c))
	// |00>,|01>,|10> positive, |11> negated, all equal magnitude 1/2.
	assert.InDelta(t, 0.5, real(e.Wave[0]), 1e-9)
	assert.InDelta(t, 0.5, real(e.Wave[1]), 1e-9)
	assert.InDelta(t, 0.5, real(e.Wave[2]), 1e-9)
	assert.InDelta(t, -0.5, real(e.Wave[3]), 1e-9)
}

func TestTGateDeferredNormalization(t *testing.T) {
	c, err := builder.New(1).H(0).T(0).Build()
	require.NoError(t, err)
	e := NewZero[complex128](1, nil)
	require.NoError(t, e.Run(c))
	probs := e.Probabilities()
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)
	probsSumToOne(t, probs)
}

func TestGateSelfInverseRestoresState(t *testing.T) {
	c, err := builder.New(2).H(0).X(1).Y(0).Z(1).CX(0, 1).Build()
	require.NoError(t, err)
	e := NewZero[complex128](2, nil)
	require.NoError(t, e.Run(c))

	inverse, err := builder.New(2).CX(0, 1).Z(1).Y(0).X(1).H(0).Build()
	require.NoError(t, err)
	e2 := e.Copy()
	require.NoError(t, e2.Run(inverse))

	zero := NewZero[complex128](2, nil)
	for i := range zero.Wave {
		assert.InDelta(t, real(zero.Wave[i]), real(e2.Wave[i]), 1e-9)
		assert.InDelta(t, imag(zero.Wave[i]), imag(e2.Wave[i]), 1e-9)
	}
}

func TestUniformInitMatchesAllHadamards(t *testing.T) {
	n := 3
	u := NewUniform[complex128](n, nil)
	u.Normalize()
	probs := u.Probabilities()
	expect := 1.0 / math.Pow(2, float64(n))
	for _, p := range probs {
		assert.InDelta(t, expect, p, 1e-9)
	}
}

func TestComplex64Instantiation(t *testing.T) {
	c, err := builder.New(2).H(0).CX(0, 1).Build()
	require.NoError(t, err)
	e := NewZero[complex64](2, nil)
	require.NoError(t, e.Run(c))
	probs := e.Probabilities()
	assert.InDelta(t, 0.5, probs[0], 1e-5)
	assert.InDelta(t, 0.5, probs[3], 1e-5)
}
