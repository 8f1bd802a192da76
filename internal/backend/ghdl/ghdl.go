// Package ghdl adapts the orchestrator core to the GHDL simulator.
package ghdl

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vk/chipflow/internal/blueprint"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/graph"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/proc"
	"github.com/vk/chipflow/internal/runner"
	"github.com/vk/chipflow/internal/units"
)

// baseOpts are passed to every ghdl analysis and run invocation.
var baseOpts = []string{"--std=08", "--ieee=synopsys", "--workdir=build", "-P=build"}

// Options configure a GHDL backend instance.
type Options struct {
	Mode    runner.Mode
	OutDir  string
	Library string // working library the top-level lives in
	TimeRes string // simulation time resolution, e.g. "ps"
	Units   *units.Resolver
}

// Backend implements runner.Backend for GHDL.
type Backend struct {
	mode    runner.Mode
	outDir  string
	workLib string
	timeRes string
	units   *units.Resolver

	// per-trial state bound by Configure
	top     string
	unit    *units.Unit
	dutFile string
}

// New creates a GHDL backend. GHDL has no interactive mode.
func New(opts Options) (*Backend, error) {
	if opts.Mode.AtLeast(runner.ModeGUI) {
		return nil, faults.Configurationf("the ghdl backend has no gui mode")
	}
	if opts.TimeRes == "" {
		opts.TimeRes = "ps"
	}
	if opts.Library == "" {
		opts.Library = "work"
	}
	return &Backend{
		mode:    opts.Mode,
		outDir:  opts.OutDir,
		workLib: opts.Library,
		timeRes: opts.TimeRes,
		units:   opts.Units,
	}, nil
}

func (b *Backend) Name() string { return "ghdl" }

// Rules returns the analysis rule for the VHDL fileset. GHDL compiles only
// VHDL; blueprints carrying other builtin filesets are rejected by the
// graph compiler.
func (b *Backend) Rules() (graph.RuleTable, []graph.Var) {
	table := graph.RuleTable{
		blueprint.FilesetVHDL: {
			Name:    "vhdl",
			Command: "ghdl ${opts} --snap=${out} --work=${lib} ${in} > ${out}",
		},
	}
	vars := []graph.Var{
		{Name: "lib", Value: "work"},
		{Name: "opts", Value: "-a " + strings.Join(baseOpts, " ")},
	}
	return table, vars
}

// Configure resolves the module's top-level unit and checks its generics.
// The design under test is resolved too when named; its file anchors the
// code coverage report.
func (b *Backend) Configure(ctx context.Context, m matrix.Module, libs []graph.Library) error {
	b.top = m.Top()
	u, err := b.units.Get(ctx, b.top)
	if err != nil {
		return err
	}
	if b.mode.AtLeast(runner.ModeSimulate) {
		if err := u.VerifyGenerics(m.Generics); err != nil {
			return err
		}
	}
	b.unit = u
	b.dutFile = ""
	if m.DUT != "" {
		dut, err := b.units.Get(ctx, m.DUT)
		if err != nil {
			return err
		}
		b.dutFile = dut.File
	}
	return nil
}

// CompileTarget resolves the build target for the file declaring the
// module's top-level unit.
func (b *Backend) CompileTarget(ctx context.Context, m matrix.Module) (string, error) {
	return graph.TargetID(b.unit.File), nil
}

// Run elaborates and executes the configured top-level with ghdl, capturing
// the output into the run log with escape sequences stripped. The raw
// coverage dumps are folded into the annotated report before archiving.
func (b *Backend) Run(ctx context.Context, m matrix.Module) ([]string, string, proc.Status) {
	logPath := filepath.Join(b.outDir, "run.log")
	fstPath := filepath.Join(b.outDir, "waves.fst")
	fcovPath := filepath.Join(b.outDir, "fcov.rpt")
	ccovPath := filepath.Join(b.outDir, "ccov.rpt")

	cmd := proc.NewCommand("ghdl", "-r").
		Args(baseOpts...).
		Arg("--time-resolution=" + b.timeRes).
		Arg("--coverage").
		Arg("--work=" + b.workLib).
		Arg(b.top).
		Arg("--fst=" + fstPath)
	for _, g := range m.Generics {
		cmd.Arg("-g" + g.String())
	}
	status := cmd.CaptureToFile(ctx, logPath)

	collectCoverage(ctx, b.outDir, b.dutFile, ccovPath)

	return []string{logPath, fstPath, fcovPath, ccovPath}, logPath, status
}

// ClassifyLog scans for GHDL error markers. An assertion failure or runtime
// error prints a "(... error):" severity tag even when the exit code says
// otherwise.
func (b *Backend) ClassifyLog(text string) bool {
	return !strings.Contains(strings.ToLower(text), "error):")
}
