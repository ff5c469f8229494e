// Package sampler implements frugal rejection sampling (Markov et al.,
// arXiv:1807.10749): drawing L distinct bitstrings from a circuit's output
// distribution without ever materializing its full 2^n-amplitude state
// vector, by rejection-sampling against single amplitudes computed
// on-demand through a feynman.Engine.
package sampler

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/kegliz/feynmansim/internal/logger"
	"github.com/kegliz/feynmansim/qc/feynman"
	"github.com/kegliz/feynmansim/qc/gate"
)

// SampleVector holds the distinct bitstrings accepted by a run and their
// associated amplitudes (for callers that also want |amplitude|^2).
type SampleVector struct {
	RunID      string
	Bitstrings []uint64
	Amplitudes map[uint64]complex128
}

// Sampler draws bitstrings from a feynman.Engine's output distribution.
type Sampler[C gate.Precision] struct {
	Engine  *feynman.Engine[C]
	Epsilon float64

	log *logger.Logger
}

// New returns a Sampler over engine with the given epsilon tolerance
// (spec §4.5's accuracy parameter — smaller epsilon means a larger
// oversampling factor M and a tighter bound on rejection bias).
func New[C gate.Precision](engine *feynman.Engine[C], epsilon float64, log *logger.Logger) *Sampler[C] {
	return &Sampler[C]{Engine: engine, Epsilon: epsilon, log: log}
}

// ChooseM returns the smallest M such that 2*exp(-M/(1-exp(-M))) < epsilon,
// the frugal-rejection-sampling oversampling factor guaranteeing the
// rejection bias stays under epsilon (main.cpp's exact search loop).
func ChooseM(epsilon float64) int {
	m := 1
	for 2*math.Exp(-float64(m)/(1-math.Exp(-float64(m)))) >= epsilon {
		m++
	}
	return m
}

// Sample draws l distinct bitstrings from the circuit's output
// distribution using frugal rejection sampling. It requires l*M < N
// (N = 2^numQubits); otherwise full simulation is cheaper than rejection
// sampling and the request is refused, matching main.cpp's precondition
// check.
func (s *Sampler[C]) Sample(ctx context.Context, l int) (*SampleVector, error) {
	n := s.Engine.Circuit.NumQubits()
	N := uint64(1) << uint(n)
	m := ChooseM(s.Epsilon)
	if uint64(l)*uint64(m) >= N {
		return nil, &feynman.ConfigError{Reason: fmt.Sprintf("requested %d bitstrings with M=%d is too many for %d qubits; consider full simulation instead (need l*M < 2^n)", l, m, n)}
	}

	runID := uuid.NewString()
	if s.log != nil {
		s.log.Info().Str("runID", runID).Int("l", l).Int("M", m).Msg("starting frugal rejection sampling")
	}

	var accepted sync.Map // bitstring -> complex128 amplitude
	var acceptedCount atomic.Int64
	rng := rand.New(rand.NewPCG(seedFromOS(), seedFromOS()))

	for acceptedCount.Load() < int64(l) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		remaining := int64(l) - acceptedCount.Load()
		batch := remaining * int64(m)
		candidates := make([]uint64, batch)
		for i := range candidates {
			candidates[i] = rng.Uint64N(N)
		}

		for _, idx := range candidates {
			if acceptedCount.Load() >= int64(l) {
				break
			}
			if _, already := accepted.Load(idx); already {
				continue
			}
			amp, err := s.Engine.Amplitude(idx)
			if err != nil {
				return nil, err
			}
			prob := cabs2(amp)
			acceptProb := math.Min(1, prob*float64(N)/float64(m))
			if rng.Float64() >= acceptProb {
				continue
			}
			if _, loaded := accepted.LoadOrStore(idx, complex128(amp)); !loaded {
				acceptedCount.Add(1)
			}
		}
	}

	out := &SampleVector{RunID: runID, Amplitudes: make(map[uint64]complex128)}
	accepted.Range(func(k, v any) bool {
		idx := k.(uint64)
		out.Bitstrings = append(out.Bitstrings, idx)
		out.Amplitudes[idx] = v.(complex128)
		return true
	})
	return out, nil
}

func cabs2(c any) float64 {
	switch v := c.(type) {
	case complex128:
		return real(v)*real(v) + imag(v)*imag(v)
	case complex64:
		return float64(real(v))*float64(real(v)) + float64(imag(v))*float64(imag(v))
	default:
		return 0
	}
}

func seedFromOS() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0xD1B54A32D192ED03
	}
	return binary.LittleEndian.Uint64(b[:])
}
