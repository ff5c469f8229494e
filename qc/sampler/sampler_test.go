package sampler

import (
	"context"
	"testing"
	"time"

	"github.com/kegliz/feynmansim/qc/builder"
	"github.com/kegliz/feynmansim/qc/feynman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseMIsMonotonicInEpsilon(t *testing.T) {
	mLoose := ChooseM(0.1)
	mTight := ChooseM(1e-4)
	assert.Greater(t, mTight, mLoose)
	assert.Greater(t, mLoose, 0)
}

func TestSampleUniformSuperpositionReturnsDistinctBitstrings(t *testing.T) {
	const numQubits = 7 // N = 128
	b := builder.New(numQubits)
	var bb = b
	for q := 0; q < numQubits; q++ {
		bb = bb.H(q)
	}
	c, err := bb.Build()
	require.NoError(t, err)

	fe, err := feynman.NewEngine[complex128](c, 1.0, uint64(1)<<40, numQubits/2, nil)
	require.NoError(t, err)

	s := New[complex128](fe, 0.05, nil) // M=4, so l*M < N=128 requires l < 32

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out, err := s.Sample(ctx, 16)
	require.NoError(t, err)
	assert.Len(t, out.Bitstrings, 16)

	seen := make(map[uint64]bool)
	for _, bs := range out.Bitstrings {
		assert.False(t, seen[bs], "duplicate bitstring %d", bs)
		seen[bs] = true
	}
}

func TestSampleRejectsInfeasibleRequest(t *testing.T) {
	// N = 2^10 = 1024. ChooseM(1e-6) >= 1 for any epsilon, so requesting
	// 2000 bitstrings always has l*M >= N regardless of the exact M.
	c, err := builder.New(10).H(0).Build()
	require.NoError(t, err)
	fe, err := feynman.NewEngine[complex128](c, 1.0, uint64(1)<<40, 5, nil)
	require.NoError(t, err)
	s := New[complex128](fe, 1e-6, nil)
	_, err = s.Sample(context.Background(), 2000)
	require.Error(t, err)
}
