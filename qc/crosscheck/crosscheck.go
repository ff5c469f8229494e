// Package crosscheck runs a circuit.Circuit on github.com/itsubaki/q as an
// independent oracle, for tests that want a second implementation to
// compare qc/statevec against. It is restricted to the Clifford+CX/CZ
// subset that library covers (H, X, Y, Z, CX, CZ) — T, SqrtX and SqrtY
// have no equivalent there, so a circuit using them is rejected rather
// than silently approximated. This mirrors how the teacher's itsu runner
// (qc/simulator/itsu/itsu.go) drives the same library gate-by-gate, just
// repurposed here from a production backend into a test fixture.
package crosscheck

import (
	"fmt"

	"github.com/itsubaki/q"
	"github.com/kegliz/feynmansim/qc/circuit"
	"github.com/kegliz/feynmansim/qc/gate"
)

// ErrUnsupportedGate is returned when c uses a gate outside the
// Clifford+CX/CZ subset this oracle can run.
type ErrUnsupportedGate struct {
	Kind gate.Kind
}

func (e *ErrUnsupportedGate) Error() string {
	return fmt.Sprintf("crosscheck: gate %s has no itsubaki/q equivalent", e.Kind)
}

// Probabilities runs c on q.New() and returns the probability of every
// basis state, in the same qubit-0-is-most-significant-bit order
// qc/statevec.Engine.Probabilities uses.
func Probabilities(c circuit.Circuit) ([]float64, error) {
	sim := q.New()
	qs := sim.ZeroWith(c.NumQubits())

	for _, g := range c.Gates() {
		switch g.Kind {
		case gate.H:
			sim.H(qs[g.Target])
		case gate.X:
			sim.X(qs[g.Target])
		case gate.Y:
			sim.Y(qs[g.Target])
		case gate.Z:
			sim.Z(qs[g.Target])
		case gate.CX:
			sim.CNOT(qs[g.Control], qs[g.Target])
		case gate.CZ:
			sim.CZ(qs[g.Control], qs[g.Target])
		default:
			return nil, &ErrUnsupportedGate{Kind: g.Kind}
		}
	}
	return sim.Probability(), nil
}
