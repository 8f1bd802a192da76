// Package msim adapts the orchestrator core to the ModelSim simulator.
package msim

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/chipflow/internal/blueprint"
	"github.com/vk/chipflow/internal/ctxlog"
	"github.com/vk/chipflow/internal/graph"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/proc"
	"github.com/vk/chipflow/internal/runner"
	"github.com/vk/chipflow/internal/units"
)

// FilesetWave tags auxiliary entries holding a saved wave layout, sourced
// when the simulator opens interactively.
const FilesetWave = "WAV"

// Options configure a ModelSim backend instance.
type Options struct {
	Mode    runner.Mode
	OutDir  string
	Library string // working library the top-level lives in
	Units   *units.Resolver
	Entries []blueprint.Entry // consulted for auxiliary wave files
}

// Backend implements runner.Backend for ModelSim.
type Backend struct {
	mode    runner.Mode
	outDir  string
	workLib string
	iniFile string
	units   *units.Resolver
	entries []blueprint.Entry

	// per-trial state bound by Configure
	top  string
	unit *units.Unit
	libs []graph.Library
}

// New creates a ModelSim backend. Library mappings go to a project-local
// modelsim.ini in the output directory rather than the tool's default; the
// MODELSIM variable points every spawned vcom/vlog/vsim at it.
func New(opts Options) (*Backend, error) {
	if opts.Library == "" {
		opts.Library = "work"
	}
	iniFile := filepath.Join(opts.OutDir, "modelsim.ini")
	if err := os.Setenv("MODELSIM", iniFile); err != nil {
		return nil, err
	}
	return &Backend{
		mode:    opts.Mode,
		outDir:  opts.OutDir,
		workLib: opts.Library,
		iniFile: iniFile,
		units:   opts.Units,
		entries: opts.Entries,
	}, nil
}

// ensureIni creates the project-local modelsim.ini on first use so compiled
// library mappings never leak into a shared ini.
func (b *Backend) ensureIni(ctx context.Context) {
	if _, err := os.Stat(b.iniFile); err == nil {
		return
	}
	if status := proc.NewCommand("vmap", "-quiet", "-c").Spawn(ctx); status.IsErr() {
		ctxlog.FromContext(ctx).Error("cannot initialize modelsim.ini", "path", b.iniFile)
	}
}

func (b *Backend) Name() string { return "msim" }

// Rules returns compiler rules for all three builtin filesets. Compile logs
// accumulate in one file per run.
func (b *Backend) Rules() (graph.RuleTable, []graph.Var) {
	table := graph.RuleTable{
		blueprint.FilesetVHDL: {
			Name:    "vhdl",
			Command: "vcom ${opts} -2008 -work ${lib} ${in} -outf ${out}",
		},
		blueprint.FilesetVerilog: {
			Name:    "vlog",
			Command: "vlog ${opts} -work ${lib} ${in} -outf ${out}",
		},
		blueprint.FilesetSystemVerilog: {
			Name:    "sysv",
			Command: "vlog ${opts} -sv -work ${lib} ${in} -outf ${out}",
		},
	}
	vars := []graph.Var{
		{Name: "lib", Value: "work"},
		{Name: "opts", Value: "-nologo -appendlog -logfile " + filepath.Join(b.outDir, "compile.log")},
	}
	return table, vars
}

// Configure resolves the module's top-level unit, checks its generics and
// keeps the working library set for DO-file generation.
func (b *Backend) Configure(ctx context.Context, m matrix.Module, libs []graph.Library) error {
	b.ensureIni(ctx)
	b.top = m.Top()
	b.libs = libs
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
	return nil
}

// CompileTarget resolves the build target for the file declaring the
// module's top-level unit.
func (b *Backend) CompileTarget(ctx context.Context, m matrix.Module) (string, error) {
	return graph.TargetID(b.unit.File), nil
}

// Run generates the DO file for the requested workflow and invokes vsim
// against it.
func (b *Backend) Run(ctx context.Context, m matrix.Module) ([]string, string, proc.Status) {
	logger := ctxlog.FromContext(ctx)
	doPath := filepath.Join(b.outDir, "run.do")
	logPath := filepath.Join(b.outDir, "run.log")
	wlfPath := filepath.Join(b.outDir, b.top+".wlf")

	do := b.buildDoFile(doPath, wlfPath, m)
	if err := do.SaveIfChanged(); err != nil {
		logger.Error("cannot write do file", "path", doPath, "error", err)
		return nil, logPath, proc.Fail
	}

	batch := "-batch"
	if b.mode.AtLeast(runner.ModeGUI) {
		batch = "-gui"
	}
	status := proc.NewCommand("vsim", batch, "-do", doPath, "-logfile", logPath).Spawn(ctx)

	return []string{logPath, wlfPath}, logPath, status
}

// ClassifyLog scans the log backwards for the simulator's trailing error
// summary. vsim exits zero even when assertions fired; only the summary
// line is trustworthy.
func (b *Backend) ClassifyLog(text string) bool {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "# Errors: ") {
			return strings.HasPrefix(lines[i], "# Errors: 0")
		}
	}
	return false
}
