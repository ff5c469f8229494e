package circuit

import (
	"testing"

	"github.com/kegliz/feynmansim/qc/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidCircuit(t *testing.T) {
	gates := []gate.Gate{
		gate.New1Q(gate.H, 0, 0),
		gate.New2Q(gate.CX, 0, 1, 1),
	}
	c, err := New(2, gates)
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumQubits())
	assert.Equal(t, 2, c.Len())
}

func TestNewRejectsOutOfRangeQubit(t *testing.T) {
	_, err := New(2, []gate.Gate{gate.New1Q(gate.X, 5, 0)})
	require.Error(t, err)
	var ie *gate.InvariantError
	require.ErrorAs(t, err, &ie)
}

func TestNewRejectsInternalGate(t *testing.T) {
	_, err := New(2, []gate.Gate{gate.New1Q(gate.P0, 0, 0)})
	require.Error(t, err)
}

func TestNewRejectsNonPositiveQubitCount(t *testing.T) {
	_, err := New(0, nil)
	require.Error(t, err)
}

func TestNewCopiesInputGates(t *testing.T) {
	gates := []gate.Gate{gate.New1Q(gate.H, 0, 0)}
	c, err := New(1, gates)
	require.NoError(t, err)
	gates[0] = gate.New1Q(gate.X, 0, 0)
	assert.Equal(t, gate.H, c.Gates()[0].Kind)
}
