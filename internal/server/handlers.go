package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kegliz/feynmansim/internal/config"
	"github.com/kegliz/feynmansim/internal/logger"
	"github.com/kegliz/feynmansim/qc/builder"
	"github.com/kegliz/feynmansim/qc/circuit"
	"github.com/kegliz/feynmansim/qc/feynman"
	"github.com/kegliz/feynmansim/qc/gate"
	"github.com/kegliz/feynmansim/qc/renderer"
	"github.com/kegliz/feynmansim/qc/sampler"
	"github.com/kegliz/feynmansim/qc/statevec"
)

var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// App holds the dependencies every handler needs: the router-injected
// per-request logger aside, every handler also needs the process-wide
// engine configuration.
type App struct {
	Config *config.EngineConfig
	Log    *logger.Logger
}

func (a *App) loggerFrom(c *gin.Context) *logger.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return a.Log
}

// HealthHandler answers liveness probes.
func (a *App) HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// RunCircuit handles POST /v1/circuits/run: builds a circuit from the
// request body, runs it by the requested method, and returns either the
// full probability vector, a set of frugally-sampled bitstrings, or the
// probability of a single bitstring, optionally alongside a rendered PNG.
func (a *App) RunCircuit(c *gin.Context) {
	l := a.loggerFrom(c)

	var req RunCircuitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	circ, err := buildCircuit(req)
	if err != nil {
		l.Error().Err(err).Msg("building circuit failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := uuid.NewString()
	var resp RunCircuitResponse
	var runErr error
	switch a.Config.Precision {
	case "single":
		resp, runErr = runCircuit[complex64](a, c, l, req, circ)
	default:
		resp, runErr = runCircuit[complex128](a, c, l, req, circ)
	}
	if runErr != nil {
		a.fail(c, l, runErr)
		return
	}
	resp.RunID = runID

	if req.Image {
		img, err := renderCircuit(circ, resp.CutIdx)
		if err != nil {
			l.Warn().Err(err).Msg("rendering circuit image failed")
		} else {
			resp.CircuitImage = img
		}
	}

	c.JSON(http.StatusOK, resp)
}

// runCircuit executes req against circ at precision C — the engines are
// generic over C (spec §3's "compile-time scalar kind"), so the request's
// configured Precision is resolved to a concrete type argument here, once,
// at the call site, rather than threaded through as a runtime value.
func runCircuit[C gate.Precision](a *App, c *gin.Context, l *logger.Logger, req RunCircuitRequest, circ circuit.Circuit) (RunCircuitResponse, error) {
	var resp RunCircuitResponse

	switch req.Method {
	case "", "statevector":
		e := statevec.NewZero[C](circ.NumQubits(), l)
		if err := e.Run(circ); err != nil {
			return resp, err
		}
		resp.Probabilities = e.Probabilities()

	case "feynman":
		maxMem := a.Config.MaxMemoryBytes()
		fidelity := a.Config.DefaultFidelity
		if fidelity <= 0 {
			fidelity = 1.0
		}
		fe, err := feynman.NewEngine[C](circ, fidelity, maxMem, -1, l)
		if err != nil {
			return resp, err
		}
		resp.CutIdx = fe.CutIdx

		n := uint64(1) << uint(circ.NumQubits())
		switch {
		case req.Samples > 0:
			eps := req.Epsilon
			if eps <= 0 {
				eps = a.Config.DefaultEpsilon
			}
			sv, err := sampler.New[C](fe, eps, l).Sample(c.Request.Context(), req.Samples)
			if err != nil {
				return resp, err
			}
			resp.Bitstrings = sv.Bitstrings
		case req.Bitstring != nil:
			if *req.Bitstring >= n {
				return resp, &gate.InvariantError{Reason: fmt.Sprintf("bitstring %d out of range [0,%d)", *req.Bitstring, n)}
			}
			amp, err := fe.Amplitude(*req.Bitstring)
			if err != nil {
				return resp, err
			}
			p := real(amp)*real(amp) + imag(amp)*imag(amp)
			resp.Probabilities = []float64{p}
		default:
			amps, err := fe.RunFull()
			if err != nil {
				return resp, err
			}
			probs := make([]float64, n)
			for idx, amp := range amps {
				probs[idx] = real(amp)*real(amp) + imag(amp)*imag(amp)
			}
			resp.Probabilities = probs
		}

	default:
		return resp, &gate.InvariantError{Reason: fmt.Sprintf("unknown method: %s", req.Method)}
	}

	return resp, nil
}

func (a *App) fail(c *gin.Context, l *logger.Logger, err error) {
	l.Error().Err(err).Msg("circuit run failed")
	switch err.(type) {
	case *gate.InvariantError, *feynman.ConfigError:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
	}
}

func buildCircuit(req RunCircuitRequest) (circuit.Circuit, error) {
	b := builder.New(req.NumQubits)
	for _, g := range req.Gates {
		switch g.Type {
		case "H":
			b = b.H(g.Target)
		case "X":
			b = b.X(g.Target)
		case "Y":
			b = b.Y(g.Target)
		case "Z":
			b = b.Z(g.Target)
		case "T":
			b = b.T(g.Target)
		case "SqrtX":
			b = b.SqrtX(g.Target)
		case "SqrtY":
			b = b.SqrtY(g.Target)
		case "CX":
			b = b.CX(g.Control, g.Target)
		case "CZ":
			b = b.CZ(g.Control, g.Target)
		default:
			return circuit.Circuit{}, fmt.Errorf("unsupported gate type: %s", g.Type)
		}
	}
	return b.Build()
}

func renderCircuit(c circuit.Circuit, cutIdx int) (string, error) {
	r := renderer.NewRenderer(48)
	var img image.Image
	var err error
	if cutIdx > 0 {
		img, err = r.RenderWithCut(c, cutIdx)
	} else {
		img, err = r.Render(c)
	}
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
