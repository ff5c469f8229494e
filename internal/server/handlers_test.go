package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/feynmansim/internal/config"
	"github.com/kegliz/feynmansim/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return &App{Config: cfg, Log: logger.NewLogger(logger.LoggerOptions{})}
}

func TestRunCircuitStatevectorBellState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := newTestApp(t)

	body, _ := json.Marshal(RunCircuitRequest{
		NumQubits: 2,
		Gates: []CircuitGateRequest{
			{Type: "H", Target: 0},
			{Type: "CX", Control: 0, Target: 1},
		},
		Method: "statevector",
	})

	w := httptest.NewRecorder()
	gctx, _ := gin.CreateTestContext(w)
	gctx.Request = httptest.NewRequest("POST", "/v1/circuits/run", bytes.NewReader(body))
	gctx.Request.Header.Set("Content-Type", "application/json")

	a.RunCircuit(gctx)

	require.Equal(t, 200, w.Code)
	var resp RunCircuitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Probabilities, 4)
	assert.InDelta(t, 0.5, resp.Probabilities[0], 1e-9)
	assert.InDelta(t, 0.5, resp.Probabilities[3], 1e-9)
}

func TestRunCircuitRejectsBadGateType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := newTestApp(t)

	body, _ := json.Marshal(RunCircuitRequest{
		NumQubits: 1,
		Gates:     []CircuitGateRequest{{Type: "BOGUS", Target: 0}},
	})

	w := httptest.NewRecorder()
	gctx, _ := gin.CreateTestContext(w)
	gctx.Request = httptest.NewRequest("POST", "/v1/circuits/run", bytes.NewReader(body))
	gctx.Request.Header.Set("Content-Type", "application/json")

	a.RunCircuit(gctx)
	require.Equal(t, 400, w.Code)
}
