// Package app wires configuration, the backend, the graph compiler and the
// runner into one application lifecycle.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/chipflow/internal/project"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *project.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("logger configured")
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: project.NewLoader(),
	}
}
