package runner

import (
	"context"

	"github.com/vk/chipflow/internal/graph"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/proc"
)

// Backend is the capability surface a vendor integration implements. All
// graph compilation and orchestration logic lives outside the backends; an
// implementation only knows its tool's rule table, command lines and log
// dialect.
type Backend interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string

	// Rules returns the build rule table and the graph-level variable
	// definitions for the backend's compiler commands.
	Rules() (graph.RuleTable, []graph.Var)

	// Configure binds the backend to the module about to run, resolving
	// its top-level metadata. Called once per trial before CompileTarget
	// and Run; re-binding an already resolved module must be cheap.
	Configure(ctx context.Context, m matrix.Module, libs []graph.Library) error

	// CompileTarget resolves the single build target needed for the
	// configured module's top-level unit.
	CompileTarget(ctx context.Context, m matrix.Module) (string, error)

	// Run executes the tool for the configured module, writing its log
	// into the output directory. It returns the artifact files the trial
	// may have produced, the path of the run log, and the raw process
	// status. The log, not the status, decides pass or fail.
	Run(ctx context.Context, m matrix.Module) (artifacts []string, logPath string, status proc.Status)

	// ClassifyLog inspects the captured run log text and decides pass or
	// fail. Vendor tools routinely misreport exit codes; the log is the
	// source of truth.
	ClassifyLog(text string) bool
}

// Executor invokes the external build executor against one target. The
// executor is free to parallelize compilation internally; that parallelism
// is opaque to the orchestrator.
type Executor interface {
	Build(ctx context.Context, target string) proc.Status
}

// NinjaExecutor shells out to the ninja binary with a generated build file.
type NinjaExecutor struct {
	// File is the path of the serialized build graph.
	File string
}

// Build compiles the given target, or everything when target is empty.
func (e NinjaExecutor) Build(ctx context.Context, target string) proc.Status {
	cmd := proc.NewCommand("ninja", "--quiet")
	if e.File != "" {
		cmd.Args("-f", e.File)
	}
	cmd.Arg(target)
	return cmd.Spawn(ctx)
}
