// Package faults defines the error taxonomy shared across components.
//
// Fatal errors (configuration, graph integrity) abort the run before any
// trial executes. Per-trial failures (compile, execution) are recorded in
// the run summary and never propagate past the orchestrator.
package faults

import "fmt"

// ExitCode is the process exit code for every failure mode, matching the
// contract of the package manager this tool plugs into.
const ExitCode = 101

// ConfigurationError reports missing or invalid setup: an unreadable
// blueprint, an unknown plan, no valid test modules, a missing required
// field. Always fatal.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

// Configurationf builds a ConfigurationError from a format string.
func Configurationf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// GraphIntegrityError reports a dependency whose target never appeared as
// the output of an earlier build edge. The blueprint's topological pre-sort
// was wrong; this is an input-data error, not a compiler bug. Always fatal.
type GraphIntegrityError struct {
	Path   string // source file whose edge referenced the dependency
	Dep    string // dependency path that resolved to an unproduced target
	Target string // the computed target identity with no producing edge
}

func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("dependency %q of %q resolves to target %q, which no earlier edge produces", e.Dep, e.Path, e.Target)
}

// CompileFailure records a non-zero result from the external build executor
// for one trial.
type CompileFailure struct {
	Unit string
}

func (e *CompileFailure) Error() string {
	return fmt.Sprintf("compilation failed for unit %q", e.Unit)
}

// ExecutionFailure records a trial whose run log was classified as failed,
// regardless of the tool's exit code.
type ExecutionFailure struct {
	Unit    string
	LogPath string
}

func (e *ExecutionFailure) Error() string {
	if e.LogPath == "" {
		return fmt.Sprintf("simulation failed for unit %q", e.Unit)
	}
	return fmt.Sprintf("simulation failed for unit %q (see log: %q)", e.Unit, e.LogPath)
}

// ToolNotFound reports a missing external binary. Callers demote it to a
// compile or execution failure for the affected trial rather than crashing.
type ToolNotFound struct {
	Name string
}

func (e *ToolNotFound) Error() string {
	return fmt.Sprintf("command not found: %q", e.Name)
}

// RunFailure reports that one or more trials failed after a completed run.
type RunFailure struct {
	Failed int
	Total  int
}

func (e *RunFailure) Error() string {
	return fmt.Sprintf("%d of %d trials failed", e.Failed, e.Total)
}
