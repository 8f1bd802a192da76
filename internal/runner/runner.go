// Package runner drives the per-module compile, execute and classify loop
// and aggregates the run summary.
//
// Execution is strictly sequential: one module runs to completion before
// the next starts. Individual trial failures are recorded in the summary,
// never raised as errors; only configuration problems abort a run.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/chipflow/internal/archive"
	"github.com/vk/chipflow/internal/ctxlog"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/graph"
	"github.com/vk/chipflow/internal/matrix"
)

// Runner executes test modules against a compiled build graph.
type Runner struct {
	backend  Backend
	executor Executor
	out      io.Writer
	outDir   string
	libs     []graph.Library
}

// New creates a runner. outDir is both where tools drop their working files
// and the root the regressions directory is created under.
func New(backend Backend, executor Executor, out io.Writer, outDir string, libs []graph.Library) *Runner {
	return &Runner{
		backend:  backend,
		executor: executor,
		out:      out,
		outDir:   outDir,
		libs:     libs,
	}
}

// Run executes every module in order and returns the aggregated summary.
//
// Compile and execute failures are recorded per trial and the run continues;
// this holds for single-module runs too, so the failure policy does not
// depend on how the matrix was produced. Metadata for every module is
// resolved up front: a broken unit reference is a configuration error and
// surfaces before any trial runs.
func (r *Runner) Run(ctx context.Context, modules []matrix.Module) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)
	if err := r.preflight(ctx, modules); err != nil {
		return nil, err
	}

	start := time.Now()
	r.printStart(len(modules))

	summary := &Summary{Total: len(modules)}
	for _, m := range modules {
		res := r.runOne(ctx, m)
		summary.record(res)
		logger.Debug("trial finished",
			"module", m.String(), "passed", res.Passed, "elapsed", res.Elapsed)
	}
	summary.Elapsed = time.Since(start)
	r.printSummary(summary)
	return summary, nil
}

// CompileOnly drives compilation for each module without executing trials.
func (r *Runner) CompileOnly(ctx context.Context, modules []matrix.Module) (*Summary, error) {
	if err := r.preflight(ctx, modules); err != nil {
		return nil, err
	}

	start := time.Now()
	summary := &Summary{Total: len(modules)}
	for _, m := range modules {
		res := Result{Module: m}
		tstart := time.Now()
		if err := r.compile(ctx, m, &res); err != nil {
			return nil, err
		}
		res.Elapsed = time.Since(tstart)
		res.Passed = res.Err == nil
		summary.record(res)
	}
	summary.Elapsed = time.Since(start)

	banner := "PASSED"
	if !summary.Ok() {
		banner = "FAILED"
	}
	fmt.Fprintf(r.out, "\n@@@ COMPILATION COMPLETE [%s] @@@\n", banner)
	return summary, nil
}

// preflight binds every module once so unresolvable metadata aborts the run
// before the first trial executes.
func (r *Runner) preflight(ctx context.Context, modules []matrix.Module) error {
	for _, m := range modules {
		if err := r.backend.Configure(ctx, m, r.libs); err != nil {
			return err
		}
	}
	return nil
}

// compile binds the module and builds its top-level target. A failed build
// is recorded on res; errors are configuration problems.
func (r *Runner) compile(ctx context.Context, m matrix.Module, res *Result) error {
	if err := r.backend.Configure(ctx, m, r.libs); err != nil {
		return err
	}
	target, err := r.backend.CompileTarget(ctx, m)
	if err != nil {
		return err
	}
	if status := r.executor.Build(ctx, target); status.IsErr() {
		res.Err = &faults.CompileFailure{Unit: m.Top()}
	}
	return nil
}

// runOne takes a single module through Configure, Compile, Execute,
// Classify and archive.
func (r *Runner) runOne(ctx context.Context, m matrix.Module) Result {
	logger := ctxlog.FromContext(ctx)
	res := Result{Module: m}
	start := time.Now()
	fmt.Fprintf(r.out, "test %s ", m)

	if err := r.compile(ctx, m, &res); err != nil {
		// Pre-flight already resolved this module; a failure here is a
		// recorded trial failure, not a fatal error.
		logger.Error("trial configuration broke mid-run", "module", m.String(), "error", err)
		res.Err = &faults.CompileFailure{Unit: m.Top()}
	}
	if res.Err != nil {
		res.Elapsed = time.Since(start)
		r.printTrial(res)
		return res
	}
	fmt.Fprint(r.out, "... ")

	artifacts, logPath, status := r.backend.Run(ctx, m)

	stored, err := archive.Store(r.outDir, m.DirName(), artifacts)
	if err != nil {
		logger.Error("failed to archive regression artifacts", "module", m.DirName(), "error", err)
	}
	res.LogPath = archivedLog(stored, logPath)

	passed := status.IsOk()
	if text, err := os.ReadFile(logPath); err != nil {
		passed = false
	} else {
		passed = passed && r.backend.ClassifyLog(string(text))
	}
	res.Passed = passed
	if !passed {
		res.Err = &faults.ExecutionFailure{Unit: m.Top(), LogPath: res.LogPath}
	}
	res.Elapsed = time.Since(start)
	r.printTrial(res)
	return res
}

// archivedLog picks the archived copy of the run log out of the stored
// artifact paths.
func archivedLog(stored []string, logPath string) string {
	for _, p := range stored {
		if logPath != "" && filepath.Base(p) == filepath.Base(logPath) {
			return p
		}
	}
	return ""
}

func (r *Runner) printStart(trials int) {
	word := "tests"
	if trials == 1 {
		word = "test"
	}
	fmt.Fprintf(r.out, "\nrunning %d %s\n", trials, word)
}

func (r *Runner) printTrial(res Result) {
	if res.Passed {
		fmt.Fprintln(r.out, "ok")
		return
	}
	if res.LogPath != "" {
		fmt.Fprintf(r.out, "failed\n  %s\n", res.LogPath)
		return
	}
	fmt.Fprintln(r.out, "failed")
}

func (r *Runner) printSummary(s *Summary) {
	verdict := "ok"
	if !s.Ok() {
		verdict = "failed"
	}
	fmt.Fprintf(r.out, "\ntest result: %s. %d passed; %d failed; finished in %.2fs\n",
		verdict, s.Passed, s.Failed, s.Elapsed.Seconds())
}
