// Package statevec implements the Schrödinger state-vector engine: a dense
// wave of 2^n amplitudes, updated in place by applying each gate of a
// circuit.Circuit in sequence. Qubit 0 is the most significant bit of the
// amplitude index, matching the original simulator's bit convention
// (offset = 1 << ((n-1)-target)).
package statevec

import (
	"fmt"
	"math"

	"github.com/kegliz/feynmansim/internal/logger"
	"github.com/kegliz/feynmansim/internal/parallel"
	"github.com/kegliz/feynmansim/qc/circuit"
	"github.com/kegliz/feynmansim/qc/gate"
)

// Engine is a Schrödinger state-vector simulator over n qubits, carrying
// amplitudes at precision C. The 1/sqrt(2) factor every H/T/SqrtX/SqrtY
// gate contributes is deferred into SqrtCounter instead of being folded
// into the wave on every gate application; Normalize applies it once.
type Engine[C gate.Precision] struct {
	Wave        []C
	NumQubits   int
	SqrtCounter int

	log *logger.Logger
}

// NewZero returns an Engine initialised to |00...0>.
func NewZero[C gate.Precision](numQubits int, log *logger.Logger) *Engine[C] {
	e := newEngine[C](numQubits, log)
	e.Wave[0] = C(complex(1, 0))
	return e
}

// NewUniform returns an Engine initialised to the equal superposition of
// all 2^n basis states (as if an H gate had already been applied to every
// qubit starting from |00...0>), with SqrtCounter set accordingly.
func NewUniform[C gate.Precision](numQubits int, log *logger.Logger) *Engine[C] {
	e := newEngine[C](numQubits, log)
	one := C(complex(1, 0))
	for i := range e.Wave {
		e.Wave[i] = one
	}
	e.SqrtCounter = numQubits
	return e
}

func newEngine[C gate.Precision](numQubits int, log *logger.Logger) *Engine[C] {
	n := 1 << uint(numQubits)
	return &Engine[C]{
		Wave:      make([]C, n),
		NumQubits: numQubits,
		log:       log,
	}
}

func (e *Engine[C]) targetBit(target int) uint64 {
	return 1 << uint((e.NumQubits-1)-target)
}

// ApplyGate mutates e.Wave in place per spec §4.1/§4.2: single-qubit gates
// dispatch through gate.Apply on each (target=0,target=1) pair; CX/CZ use
// their own optimized bitmask forms. g is trusted to already be valid for
// e.NumQubits — circuit.New and circuit.NewInternal are the validation
// boundary, the latter deliberately admitting the Feynman engine's internal
// P0/P1 projection gates that circuit.New rejects.
func (e *Engine[C]) ApplyGate(g gate.Gate) error {
	switch g.Kind {
	case gate.CX:
		e.applyCX(g.Control, g.Target)
	case gate.CZ:
		e.applyCZ(g.Control, g.Target)
	default:
		e.apply1Q(g.Kind, g.Target)
		e.SqrtCounter += gate.CounterDelta(g.Kind)
	}
	if e.log != nil {
		e.log.Debug().Str("gate", g.Kind.String()).Int("target", g.Target).Msg("applied gate")
	}
	return nil
}

func (e *Engine[C]) apply1Q(k gate.Kind, target int) {
	offset := e.targetBit(target)
	nblocks := len(e.Wave) / 2
	parallel.ParallelFor(nblocks, func(i int) {
		// block indexing: thread i owns the pair (idx, idx+offset) whose
		// target bit is 0 and 1 respectively; these pairs partition the wave.
		idx := 2*uint64(i) - uint64(i)%offset
		j := idx + offset
		a0, a1 := gate.Apply[C](k, e.Wave[idx], e.Wave[j])
		e.Wave[idx], e.Wave[j] = a0, a1
	})
	parallel.Fence()
}

func (e *Engine[C]) applyCZ(control, target int) {
	cb, tb := e.targetBit(control), e.targetBit(target)
	n := len(e.Wave)
	parallel.ParallelFor(n, func(i int) {
		idx := uint64(i)
		if idx&cb != 0 && idx&tb != 0 {
			e.Wave[idx] = -e.Wave[idx]
		}
	})
	parallel.Fence()
}

func (e *Engine[C]) applyCX(control, target int) {
	cb, tb := e.targetBit(control), e.targetBit(target)
	n := len(e.Wave)
	parallel.ParallelFor(n, func(i int) {
		idx := uint64(i)
		if idx&tb != 0 {
			return // visit only the target-bit=0 half of each swap pair
		}
		if idx&cb == 0 {
			return // control not set, CX is identity here
		}
		j := idx | tb
		e.Wave[idx], e.Wave[j] = e.Wave[j], e.Wave[idx]
	})
	parallel.Fence()
}

// Normalize folds the deferred sqrt(2)^SqrtCounter divisor into the wave
// and resets the counter to zero.
func (e *Engine[C]) Normalize() {
	if e.SqrtCounter == 0 {
		return
	}
	factor := math.Pow(math.Sqrt2, float64(e.SqrtCounter))
	inv := C(complex(1/factor, 0))
	n := len(e.Wave)
	parallel.ParallelFor(n, func(i int) {
		e.Wave[i] *= inv
	})
	e.SqrtCounter = 0
}

// Copy returns a deep copy of e.
func (e *Engine[C]) Copy() *Engine[C] {
	cp := &Engine[C]{
		Wave:        make([]C, len(e.Wave)),
		NumQubits:   e.NumQubits,
		SqrtCounter: e.SqrtCounter,
		log:         e.log,
	}
	copy(cp.Wave, e.Wave)
	return cp
}

// Run applies every gate of c in sequence, then normalizes once.
func (e *Engine[C]) Run(c circuit.Circuit) error {
	if c.NumQubits() != e.NumQubits {
		return fmt.Errorf("statevec: circuit has %d qubits, engine has %d", c.NumQubits(), e.NumQubits)
	}
	for _, g := range c.Gates() {
		if err := e.ApplyGate(g); err != nil {
			return err
		}
	}
	e.Normalize()
	return nil
}

// Probabilities returns |amplitude|^2 for every basis state.
func (e *Engine[C]) Probabilities() []float64 {
	out := make([]float64, len(e.Wave))
	for i, a := range e.Wave {
		re, im := float64(real(complex128(a))), float64(imag(complex128(a)))
		out[i] = re*re + im*im
	}
	return out
}
