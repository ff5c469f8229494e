package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16.0, cfg.MaxMemoryGiB)
	assert.Equal(t, "double", cfg.Precision)
	assert.Equal(t, 1.0, cfg.DefaultFidelity)
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("SIM_PRECISION", "single")
	defer os.Unsetenv("SIM_PRECISION")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "single", cfg.Precision)
}

func TestMaxMemoryBytes(t *testing.T) {
	cfg := EngineConfig{MaxMemoryGiB: 1}
	assert.Equal(t, uint64(1<<30), cfg.MaxMemoryBytes())
}
