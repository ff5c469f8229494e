// Package config loads the simulator's runtime configuration with
// viper: defaults, an optional YAML file, and SIM_-prefixed environment
// variable overrides, the way the teacher's server wiring expects a
// *config.Config to already exist (it is referenced from
// internal/app/app.go but was never actually implemented there).
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EngineConfig is the simulator's tunable configuration.
type EngineConfig struct {
	Debug            bool    `mapstructure:"debug"`
	MaxMemoryGiB     float64 `mapstructure:"max_memory_gib"`
	DefaultFidelity  float64 `mapstructure:"default_fidelity"`
	DefaultEpsilon   float64 `mapstructure:"default_epsilon"`
	Precision        string  `mapstructure:"precision"` // "single" or "double"
	RecursiveFeynman bool    `mapstructure:"recursive_feynman"`
	Port             int     `mapstructure:"port"`
}

// MaxMemoryBytes converts MaxMemoryGiB to a byte count for qc/feynman.
func (c EngineConfig) MaxMemoryBytes() uint64 {
	return uint64(c.MaxMemoryGiB * (1 << 30))
}

// Load reads configuration from, in increasing priority: built-in
// defaults, configFile (if non-empty and present), then SIM_-prefixed
// environment variables (e.g. SIM_MAX_MEMORY_GIB, SIM_PRECISION).
func Load(configFile string) (*EngineConfig, error) {
	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("max_memory_gib", 16.0)
	v.SetDefault("default_fidelity", 1.0)
	v.SetDefault("default_epsilon", 5e-4)
	v.SetDefault("precision", "double")
	v.SetDefault("recursive_feynman", true)
	v.SetDefault("port", 8080)

	v.SetEnvPrefix("SIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
