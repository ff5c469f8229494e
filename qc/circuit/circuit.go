// Package circuit holds the immutable Circuit value object: a qubit count
// plus an ordered sequence of gates, applied strictly in sequence order
// (spec §3). Unlike the teacher's circuit package, there is no DAG here —
// this gate model has no branching dependency structure to topologically
// sort, only a flat program order that both the Schrödinger and Feynman
// engines walk linearly.
package circuit

import (
	"fmt"

	"github.com/kegliz/feynmansim/qc/gate"
)

// Circuit is immutable once constructed via New.
type Circuit struct {
	numQubits int
	gates     []gate.Gate
}

// New validates gates against numQubits and, if they all pass, returns an
// immutable Circuit holding a private copy of the slice.
func New(numQubits int, gates []gate.Gate) (Circuit, error) {
	if numQubits <= 0 {
		return Circuit{}, &gate.InvariantError{Reason: "numQubits must be positive"}
	}
	for i, g := range gates {
		if err := g.Validate(numQubits); err != nil {
			return Circuit{}, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	cp := make([]gate.Gate, len(gates))
	copy(cp, gates)
	return Circuit{numQubits: numQubits, gates: cp}, nil
}

// NewInternal builds a Circuit without running gate.Gate.Validate's
// caller-input checks. It exists solely for the Feynman engine's
// half-circuits, whose gate streams legitimately contain the internal
// P0/P1 projection gates that Validate otherwise rejects unconditionally;
// every other caller must use New.
func NewInternal(numQubits int, gates []gate.Gate) (Circuit, error) {
	if numQubits <= 0 {
		return Circuit{}, &gate.InvariantError{Reason: "numQubits must be positive"}
	}
	cp := make([]gate.Gate, len(gates))
	copy(cp, gates)
	return Circuit{numQubits: numQubits, gates: cp}, nil
}

// NumQubits returns the qubit count n.
func (c Circuit) NumQubits() int { return c.numQubits }

// Gates returns the ordered gate sequence. Callers must not mutate the
// returned slice; New defensively copies its input so this aliases only
// the Circuit's own private storage.
func (c Circuit) Gates() []gate.Gate { return c.gates }

// Len is the number of gates in the circuit.
func (c Circuit) Len() int { return len(c.gates) }
