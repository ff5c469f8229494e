// Package builder implements a fluent declarative DSL for constructing
// circuits, in the teacher's bail-out-on-first-error style. Unlike the
// teacher's DAG-backed builder, this gate model has no dependency graph to
// assemble — each call just appends to a flat, ordered gate slice — so the
// builder's only bookkeeping is an informational per-qubit "next free
// cycle" counter, used purely for gate.Gate.Cycle and circuit rendering.
package builder

import (
	"fmt"

	"github.com/kegliz/feynmansim/qc/circuit"
	"github.com/kegliz/feynmansim/qc/gate"
)

// Builder is a fluent circuit-construction DSL. Every call returns the
// Builder itself so calls chain; once an error occurs it is latched and
// all further calls become no-ops until Build is called.
type Builder interface {
	H(q int) Builder
	X(q int) Builder
	Y(q int) Builder
	Z(q int) Builder
	T(q int) Builder
	SqrtX(q int) Builder
	SqrtY(q int) Builder

	CX(ctrl, tgt int) Builder
	CZ(ctrl, tgt int) Builder

	// Build validates the accumulated gates and returns the finished
	// Circuit. The Builder must not be reused afterwards.
	Build() (circuit.Circuit, error)
}

// New returns a fresh Builder over numQubits qubits.
func New(numQubits int) Builder {
	return &b{numQubits: numQubits, nextCycle: make([]int, numQubits)}
}

type b struct {
	numQubits int
	gates     []gate.Gate
	nextCycle []int
	err       error
	built     bool
}

func (b *b) bail(err error) Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *b) checkState() bool { return b.built || b.err != nil }

// cycleFor returns the first cycle at which every one of qubits is free,
// then advances each of their counters past it — the same "earliest slot
// both operands are free" rule the teacher's DAG layering computes, just
// without a graph to walk.
func (b *b) cycleFor(qubits ...int) (int, error) {
	cycle := 0
	for _, q := range qubits {
		if q < 0 || q >= b.numQubits {
			return 0, &gate.InvariantError{Reason: fmt.Sprintf("qubit %d out of range [0,%d)", q, b.numQubits)}
		}
		if b.nextCycle[q] > cycle {
			cycle = b.nextCycle[q]
		}
	}
	for _, q := range qubits {
		b.nextCycle[q] = cycle + 1
	}
	return cycle, nil
}

func (b *b) add1(k gate.Kind, q int) Builder {
	if b.checkState() {
		return b
	}
	cycle, err := b.cycleFor(q)
	if err != nil {
		return b.bail(err)
	}
	b.gates = append(b.gates, gate.New1Q(k, q, cycle))
	return b
}

func (b *b) add2(k gate.Kind, ctrl, tgt int) Builder {
	if b.checkState() {
		return b
	}
	if ctrl == tgt {
		return b.bail(&gate.InvariantError{Reason: fmt.Sprintf("%s control and target must differ, both are %d", k, ctrl)})
	}
	cycle, err := b.cycleFor(ctrl, tgt)
	if err != nil {
		return b.bail(err)
	}
	b.gates = append(b.gates, gate.New2Q(k, ctrl, tgt, cycle))
	return b
}

func (b *b) H(q int) Builder     { return b.add1(gate.H, q) }
func (b *b) X(q int) Builder     { return b.add1(gate.X, q) }
func (b *b) Y(q int) Builder     { return b.add1(gate.Y, q) }
func (b *b) Z(q int) Builder     { return b.add1(gate.Z, q) }
func (b *b) T(q int) Builder     { return b.add1(gate.T, q) }
func (b *b) SqrtX(q int) Builder { return b.add1(gate.SqrtX, q) }
func (b *b) SqrtY(q int) Builder { return b.add1(gate.SqrtY, q) }

func (b *b) CX(ctrl, tgt int) Builder { return b.add2(gate.CX, ctrl, tgt) }
func (b *b) CZ(ctrl, tgt int) Builder { return b.add2(gate.CZ, ctrl, tgt) }

func (b *b) Build() (circuit.Circuit, error) {
	if b.built {
		return circuit.Circuit{}, fmt.Errorf("builder: Build already called")
	}
	b.built = true
	if b.err != nil {
		return circuit.Circuit{}, b.err
	}
	return circuit.New(b.numQubits, b.gates)
}
