// Command simcli builds a handful of demonstration circuits
// programmatically (no file parsing — that format is out of scope) and
// runs each one through the Schrödinger engine, the Feynman engine, and
// the frugal rejection sampler, printing the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/kegliz/feynmansim/internal/logger"
	"github.com/kegliz/feynmansim/qc/builder"
	"github.com/kegliz/feynmansim/qc/feynman"
	"github.com/kegliz/feynmansim/qc/sampler"
	"github.com/kegliz/feynmansim/qc/statevec"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable debug logging")
	epsilon := flag.Float64("epsilon", 5e-4, "frugal rejection sampling accuracy")
	samples := flag.Int("samples", 8, "number of bitstrings to sample from the Feynman engine")
	flag.Parse()

	log := logger.NewLogger(logger.LoggerOptions{Debug: *verbose})

	fmt.Println("--- Bell state, Schrödinger engine ---")
	bellStatevector(log)

	fmt.Println("\n--- 4-qubit uniform-superposition-plus-CZ, Feynman engine ---")
	crossCutFeynman(log)

	fmt.Println("\n--- 7-qubit uniform superposition, frugal rejection sampler ---")
	uniformSample(log, *epsilon, *samples)
}

func bellStatevector(log *logger.Logger) {
	c, err := builder.New(2).H(0).CX(0, 1).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}
	e := statevec.NewZero[complex128](2, log)
	if err := e.Run(c); err != nil {
		fmt.Println("run error:", err)
		return
	}
	printProbabilities(e.Probabilities())
}

func crossCutFeynman(log *logger.Logger) {
	c, err := builder.New(4).H(0).H(1).H(2).H(3).CZ(1, 2).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}
	fe, err := feynman.NewEngine[complex128](c, 1.0, uint64(1)<<34, -1, log)
	if err != nil {
		fmt.Println("engine error:", err)
		return
	}
	fmt.Printf("selected cut: %d qubits left, %d cross-CZ gates\n", fe.CutIdx, fe.NumXCZ)

	amps, err := fe.RunFull()
	if err != nil {
		fmt.Println("run error:", err)
		return
	}
	probs := make([]float64, len(amps))
	for idx, amp := range amps {
		probs[idx] = real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	printProbabilities(probs)
}

func uniformSample(log *logger.Logger, epsilon float64, l int) {
	const n = 7
	b := builder.New(n)
	for q := 0; q < n; q++ {
		b = b.H(q)
	}
	c, err := b.Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}
	fe, err := feynman.NewEngine[complex128](c, 1.0, uint64(1)<<34, n/2, log)
	if err != nil {
		fmt.Println("engine error:", err)
		return
	}
	s := sampler.New[complex128](fe, epsilon, log)
	out, err := s.Sample(context.Background(), l)
	if err != nil {
		fmt.Println("sample error:", err)
		return
	}
	sorted := append([]uint64(nil), out.Bitstrings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	fmt.Printf("run %s drew %d distinct bitstrings:\n", out.RunID, len(sorted))
	for _, bs := range sorted {
		fmt.Printf("  %0*b\n", n, bs)
	}
}

func printProbabilities(probs []float64) {
	n := 0
	for 1<<uint(n) < len(probs) {
		n++
	}
	for idx, p := range probs {
		if p < 1e-9 {
			continue
		}
		fmt.Printf("|%0*b>: %.4f\n", n, idx, p)
	}
}
