package feynman

import (
	"fmt"

	"github.com/kegliz/feynmansim/qc/circuit"
	"github.com/kegliz/feynmansim/qc/gate"
)

// elemSize is the number of bytes backing one amplitude of precision C,
// used to translate a qubit split into a memory estimate (spec §4.3's
// memory formula: 4*(mem1+mem2) <= max_memory, the factor of 4 leaving
// headroom for a second resident copy of each half during path
// exploration).
func elemSize[C gate.Precision]() uint64 {
	var zero C
	switch any(zero).(type) {
	case complex64:
		return 8
	default:
		return 16
	}
}

// halfMemory is the byte footprint of a 2^qubits-amplitude half-wave.
func halfMemory[C gate.Precision](qubits int) uint64 {
	return elemSize[C]() * (uint64(1) << uint(qubits))
}

// countCrossCZ reports how many gates straddle a cut after cutIdx qubits
// (qubits [0,cutIdx) on the left, [cutIdx,n) on the right), or an error if
// any straddling gate is not a CZ — cross-cut CX (or any other crossing
// gate) cannot be decomposed this way and is a hard precondition
// violation (spec §9's forbidden-cross-CX Open Question).
func countCrossCZ(gates []gate.Gate, cutIdx int) (int, error) {
	n := 0
	for _, g := range gates {
		if !g.Kind.IsTwoQubit() {
			continue
		}
		leftSide := g.Control < cutIdx
		rightSide := g.Target < cutIdx
		if leftSide == rightSide {
			continue // both operands on the same side, not a cross gate
		}
		if g.Kind != gate.CZ {
			return 0, &gate.InvariantError{Reason: fmt.Sprintf("%s gate crosses the register cut; only CZ may cross", g.Kind)}
		}
		n++
	}
	return n, nil
}

// SelectCut chooses the register cut (number of qubits assigned to the
// left half) minimizing the number of cross-CZ gates among every cut that
// keeps both halves' memory estimate within maxMemory, matching
// find_optimal_cut's sweep over every interior cut index. Ties are broken
// by the smallest cut index, making selection deterministic and
// monotonic in maxMemory (a larger budget never picks a worse cut).
func SelectCut[C gate.Precision](c circuit.Circuit, maxMemory uint64) (int, int, error) {
	n := c.NumQubits()
	if n < 2 {
		return 0, 0, &ConfigError{Reason: "Feynman simulation requires at least 2 qubits"}
	}
	bestCut, bestXCZ := -1, -1
	for cut := 1; cut < n; cut++ {
		if 4*(halfMemory[C](cut)+halfMemory[C](n-cut)) > maxMemory {
			continue
		}
		xcz, err := countCrossCZ(c.Gates(), cut)
		if err != nil {
			return 0, 0, err
		}
		if bestCut == -1 || xcz < bestXCZ {
			bestCut, bestXCZ = cut, xcz
		}
	}
	if bestCut == -1 {
		return 0, 0, &ConfigError{Reason: "no register cut fits within the memory budget"}
	}
	return bestCut, bestXCZ, nil
}
