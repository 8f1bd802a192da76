package app

import (
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/runner"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BackendName   string
	Mode          runner.Mode
	BlueprintPath string
	BlueprintPlan string
	ProjectPath   string
	OutDir        string
	Library       string
	Manager       string // package manager binary queried for unit metadata
	TimeRes       string

	// Override module fields; a valid override replaces the project's test
	// table entirely.
	DUT      string
	TB       string
	Generics []matrix.Generic
	Seed     *uint32

	LogFormat string
	LogLevel  string
}

// NewConfig validates the configuration and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BackendName == "" {
		return nil, faults.Configurationf("no backend selected")
	}
	if cfg.BlueprintPath == "" {
		return nil, faults.Configurationf("no blueprint file given")
	}
	if cfg.BlueprintPlan == "" {
		return nil, faults.Configurationf("no blueprint plan given")
	}
	if cfg.Manager == "" {
		cfg.Manager = "orbit"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return &cfg, nil
}
