package builder

import (
	"testing"

	"github.com/kegliz/feynmansim/qc/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBellCircuit(t *testing.T) {
	c, err := New(2).H(0).CX(0, 1).Build()
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, gate.H, c.Gates()[0].Kind)
	assert.Equal(t, gate.CX, c.Gates()[1].Kind)
	assert.Equal(t, 0, c.Gates()[0].Cycle)
	assert.Equal(t, 1, c.Gates()[1].Cycle)
}

func TestBuildAssignsIndependentGatesSameCycle(t *testing.T) {
	c, err := New(2).H(0).H(1).Build()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Gates()[0].Cycle)
	assert.Equal(t, 0, c.Gates()[1].Cycle)
}

func TestBuildLatchesOutOfRangeError(t *testing.T) {
	_, err := New(2).H(5).CX(0, 1).Build()
	require.Error(t, err)
}

func TestBuildLatchesSameQubitCXError(t *testing.T) {
	_, err := New(2).CX(0, 0).Build()
	require.Error(t, err)
}

func TestBuildTwiceErrors(t *testing.T) {
	bd := New(1).H(0)
	_, err := bd.Build()
	require.NoError(t, err)
	_, err = bd.Build()
	require.Error(t, err)
}
