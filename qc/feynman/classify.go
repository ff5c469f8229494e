package feynman

import "github.com/kegliz/feynmansim/qc/gate"

// crossGate records one cross-cut CZ, renumbered to each half's local
// qubit indices: leftQubit in the left half, rightQubit in the right
// half. CZ is symmetric, so classification always names the left-half
// operand leftQubit regardless of which side held the original Control.
type crossGate struct {
	leftQubit, rightQubit int
}

// split holds the two half-circuits' gates, in original program order,
// and the ordered list of cross-cut CZ gates that were removed from the
// stream to be re-inserted per path by pathGates.
type split struct {
	cutIdx     int
	leftGates  []gate.Gate
	rightGates []gate.Gate
	crossGates []crossGate
}

// classify walks gates once in order, bucketing each into the left half,
// the right half, or — for a straddling CZ — the cross list, renumbering
// qubit indices to be local to each half. countCrossCZ must already have
// validated that only CZ gates straddle the cut.
func classify(gates []gate.Gate, cutIdx int) split {
	s := split{cutIdx: cutIdx}
	for _, g := range gates {
		if !g.Kind.IsTwoQubit() {
			if g.Target < cutIdx {
				s.leftGates = append(s.leftGates, gate.New1Q(g.Kind, g.Target, g.Cycle))
			} else {
				s.rightGates = append(s.rightGates, gate.New1Q(g.Kind, g.Target-cutIdx, g.Cycle))
			}
			continue
		}
		leftSide := g.Control < cutIdx
		rightSide := g.Target < cutIdx
		if leftSide == rightSide {
			if leftSide {
				s.leftGates = append(s.leftGates, gate.New2Q(g.Kind, g.Control, g.Target, g.Cycle))
			} else {
				s.rightGates = append(s.rightGates, gate.New2Q(g.Kind, g.Control-cutIdx, g.Target-cutIdx, g.Cycle))
			}
			continue
		}
		var lq, rq int
		if g.Control < cutIdx {
			lq, rq = g.Control, g.Target-cutIdx
		} else {
			lq, rq = g.Target, g.Control-cutIdx
		}
		s.crossGates = append(s.crossGates, crossGate{leftQubit: lq, rightQubit: rq})
		// The cross gate is a marker in each half's stream: a projector on
		// the left side, a conditional Z on the right side, chosen per path
		// in pathGates. We splice in placeholders here so both halves keep
		// the cross gates' relative position among their own real gates.
		idx := len(s.crossGates) - 1
		s.leftGates = append(s.leftGates, crossMarker(idx, lq, g.Cycle))
		s.rightGates = append(s.rightGates, crossMarker(idx, rq, g.Cycle))
	}
	return s
}

// crossMarker builds the placeholder classify splices into a half's gate
// stream for cross gate crossIdx. It carries the cross gate's index through
// the ordinary gate.Gate value without a parallel marker type; pathGates
// replaces every marker with the gate chosen by the path.
func crossMarker(crossIdx, qubit, cycle int) gate.Gate {
	// A marker is encoded as a P0 gate whose Control field holds the cross
	// gate's index (P0/P1 never otherwise carry a control, so this is an
	// unambiguous sentinel resolved by pathGates before any engine sees it).
	return gate.Gate{Kind: gate.P0, Target: qubit, Control: crossIdx, Cycle: cycle}
}

// pathGates resolves every marker produced by classify into the concrete
// projector (left half) or conditional Z/identity (right half) gate
// chosen by path's bit for that cross gate: bit 0 means P0 on the left
// qubit and identity (the gate is simply dropped) on the right qubit;
// bit 1 means P1 on the left qubit and Z on the right qubit — the
// standard CZ = P0⊗I + P1⊗Z decomposition.
func pathGates(markedGates []gate.Gate, path uint64, rightSide bool) []gate.Gate {
	out := make([]gate.Gate, 0, len(markedGates))
	for _, g := range markedGates {
		if g.Kind != gate.P0 || g.Control == gate.NoControl {
			out = append(out, g)
			continue
		}
		crossIdx := g.Control
		bit := (path >> uint(crossIdx)) & 1
		if !rightSide {
			if bit == 0 {
				out = append(out, gate.New1Q(gate.P0, g.Target, g.Cycle))
			} else {
				out = append(out, gate.New1Q(gate.P1, g.Target, g.Cycle))
			}
			continue
		}
		if bit == 1 {
			out = append(out, gate.New1Q(gate.Z, g.Target, g.Cycle))
		}
		// bit == 0: identity, drop the marker entirely.
	}
	return out
}
