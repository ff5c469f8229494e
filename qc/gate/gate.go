// Package gate defines the fixed gate set of the simulator: a closed
// enumeration of single- and two-qubit unitaries plus the two internal
// projection gates used only by the Feynman engine to split a cross-cut CZ.
package gate

import "fmt"

// Kind identifies one gate from the fixed gate set. Unlike the teacher's
// open-ended Gate interface (one type per gate, discovered through a
// Factory), the simulator core dispatches on a closed enum so that kernel
// application can be a plain switch instead of an interface call — the
// tagged-dispatch-over-indirect-call style an accelerator backend needs.
type Kind uint8

const (
	X Kind = iota
	Y
	Z
	H
	T
	SqrtX
	SqrtY
	CX
	CZ
	P0 // internal: diag(1,0), Feynman engine only
	P1 // internal: diag(0,1), Feynman engine only
)

func (k Kind) String() string {
	switch k {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	case H:
		return "H"
	case T:
		return "T"
	case SqrtX:
		return "SqrtX"
	case SqrtY:
		return "SqrtY"
	case CX:
		return "CX"
	case CZ:
		return "CZ"
	case P0:
		return "P0"
	case P1:
		return "P1"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsTwoQubit reports whether k takes a control qubit.
func (k Kind) IsTwoQubit() bool { return k == CX || k == CZ }

// IsInternal reports whether k is one of the Feynman engine's private
// projection gates — these must never appear in a caller-supplied circuit.
func (k Kind) IsInternal() bool { return k == P0 || k == P1 }

// NoControl is the sentinel control value for single-qubit gates.
const NoControl = -1

// Gate is an immutable value object: a gate kind, the qubit(s) it acts on,
// and an informational cycle (layer) number that plays no role in
// simulation semantics.
type Gate struct {
	Kind    Kind
	Target  int
	Control int // NoControl unless Kind.IsTwoQubit()
	Cycle   int
}

// New1Q builds a single-qubit gate at the given cycle.
func New1Q(k Kind, target, cycle int) Gate {
	return Gate{Kind: k, Target: target, Control: NoControl, Cycle: cycle}
}

// New2Q builds a two-qubit (CX/CZ) gate at the given cycle.
func New2Q(k Kind, control, target, cycle int) Gate {
	return Gate{Kind: k, Target: target, Control: control, Cycle: cycle}
}

// InvariantError reports a fatal precondition violation: an out-of-range
// qubit index, a malformed control/target pair, or an internal gate
// (P0/P1) surfacing in caller-supplied input. These are never recovered
// from locally — they abort the run, per spec §7.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string { return "quantum: invariant violation: " + e.Reason }

// Validate checks g against the data-model invariants of spec §3: CX/CZ
// must have control != target with both indices in [0, numQubits); every
// other kind must carry NoControl. It rejects P0/P1 unconditionally since
// those gates only ever exist inside the Feynman engine's own path
// expansion, never in a caller-supplied circuit.
func (g Gate) Validate(numQubits int) error {
	if g.Kind.IsInternal() {
		return &InvariantError{Reason: fmt.Sprintf("gate kind %s may not appear in an input circuit", g.Kind)}
	}
	if g.Target < 0 || g.Target >= numQubits {
		return &InvariantError{Reason: fmt.Sprintf("target qubit %d out of range [0,%d)", g.Target, numQubits)}
	}
	if g.Kind.IsTwoQubit() {
		if g.Control < 0 || g.Control >= numQubits {
			return &InvariantError{Reason: fmt.Sprintf("control qubit %d out of range [0,%d)", g.Control, numQubits)}
		}
		if g.Control == g.Target {
			return &InvariantError{Reason: fmt.Sprintf("%s control and target must differ, both are %d", g.Kind, g.Target)}
		}
	} else if g.Control != NoControl {
		return &InvariantError{Reason: fmt.Sprintf("%s gate must not carry a control qubit", g.Kind)}
	}
	return nil
}
