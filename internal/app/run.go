package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/chipflow/internal/blueprint"
	"github.com/vk/chipflow/internal/ctxlog"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/graph"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/runner"
	"github.com/vk/chipflow/internal/units"
)

// Run executes the full workflow: load the blueprint, compile and serialize
// the build graph, expand the test matrix and drive the runner through the
// configured mode. A nil return means every trial passed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config
	a.logger.Debug("run started", "backend", cfg.BackendName, "mode", cfg.Mode.String())

	bp, err := blueprint.Load(cfg.BlueprintPath, cfg.BlueprintPlan)
	if err != nil {
		return err
	}
	a.logger.Debug("blueprint loaded", "path", bp.File(), "entries", len(bp.Entries()))

	resolver := units.NewResolver(cfg.Manager)
	backend, err := a.newBackend(bp.Entries(), resolver)
	if err != nil {
		return err
	}

	table, vars := backend.Rules()
	g, libs, err := graph.Compile(bp.Entries(), table, vars...)
	if err != nil {
		return err
	}
	buildFile := filepath.Join(cfg.OutDir, "build.ninja")
	if err := g.SaveFile(buildFile); err != nil {
		return fmt.Errorf("cannot serialize build graph: %w", err)
	}
	a.logger.Debug("build graph serialized", "path", buildFile, "edges", len(g.Edges()))

	model, err := a.loader.Load(ctx, cfg.ProjectPath)
	if err != nil {
		return err
	}
	override := &matrix.Module{
		DUT:      cfg.DUT,
		TB:       cfg.TB,
		Generics: cfg.Generics,
		Seed:     cfg.Seed,
	}
	modules, err := matrix.Expand(model.Tests, override)
	if err != nil {
		return err
	}

	run := runner.New(backend, runner.NinjaExecutor{File: buildFile}, a.outW, cfg.OutDir, libs)
	var summary *runner.Summary
	if cfg.Mode.AtLeast(runner.ModeSimulate) {
		summary, err = run.Run(ctx, modules)
	} else {
		summary, err = run.CompileOnly(ctx, modules)
	}
	if err != nil {
		return err
	}
	if !summary.Ok() {
		return &faults.RunFailure{Failed: summary.Failed, Total: summary.Total}
	}
	return nil
}
