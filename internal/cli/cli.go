package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/chipflow/internal/app"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/runner"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// genericList collects repeatable --generic flags in the order given.
type genericList []matrix.Generic

func (g *genericList) String() string {
	parts := make([]string, len(*g))
	for i, gen := range *g {
		parts[i] = gen.String()
	}
	return strings.Join(parts, ",")
}

func (g *genericList) Set(value string) error {
	gen, err := matrix.ParseGeneric(value)
	if err != nil {
		return err
	}
	*g = append(*g, gen)
	return nil
}

// envOr reads an environment variable, falling back to def when unset. The
// package manager exports run context through ORBIT_* variables; explicit
// flags always win over them.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("chipflow", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
chipflow - Incremental HDL build and test orchestrator.

Usage:
  chipflow [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	var generics genericList
	backendFlag := flagSet.String("backend", "", "Vendor backend to drive. Options: 'ghdl' or 'msim'.")
	runFlag := flagSet.String("run", "sim", "Workflow mode. Options: 'com', 'sim' or 'gui'.")
	flagSet.StringVar(runFlag, "r", "sim", "Workflow mode (shorthand).")
	flagSet.Var(&generics, "generic", "Top-level generic as KEY=VALUE. Repeatable.")
	flagSet.Var(&generics, "g", "Top-level generic as KEY=VALUE (shorthand).")
	seedFlag := flagSet.String("seed", "", "Randomization seed, or 'random' for a fresh one.")
	timeResFlag := flagSet.String("time-res", "ps", "Simulation time resolution.")
	flagSet.StringVar(timeResFlag, "t", "ps", "Simulation time resolution (shorthand).")
	blueprintFlag := flagSet.String("blueprint", envOr("ORBIT_BLUEPRINT", ""), "Path to the blueprint source listing.")
	planFlag := flagSet.String("plan", envOr("ORBIT_BLUEPRINT_PLAN", "tsv"), "Blueprint plan. Options: 'tsv' or 'json'.")
	projectFlag := flagSet.String("project", envOr("ORBIT_MANIFEST_FILE", ""), "Path to the project file holding the test table.")
	outDirFlag := flagSet.String("out-dir", envOr("ORBIT_OUT_DIR", "."), "Directory for generated files and regression archives.")
	dutFlag := flagSet.String("dut", envOr("ORBIT_DUT_NAME", ""), "Design under test for an override run.")
	tbFlag := flagSet.String("tb", envOr("ORBIT_TB_NAME", ""), "Testbench for an override run.")
	libFlag := flagSet.String("lib", envOr("ORBIT_PROJECT_LIBRARY", "work"), "Working library of the top-level unit.")
	managerFlag := flagSet.String("manager", envOr("ORBIT", "orbit"), "Package manager binary queried for unit metadata.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: faults.ExitCode, Message: err.Error()}
	}

	if *backendFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	mode, err := runner.ParseMode(*runFlag)
	if err != nil {
		return nil, false, &ExitError{Code: faults.ExitCode, Message: err.Error()}
	}

	var seed *uint32
	switch *seedFlag {
	case "":
	case "random":
		seed = matrix.RandomSeed()
	default:
		s, err := matrix.ParseSeed(*seedFlag)
		if err != nil {
			return nil, false, &ExitError{Code: faults.ExitCode, Message: err.Error()}
		}
		seed = s
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: faults.ExitCode, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: faults.ExitCode, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		BackendName:   *backendFlag,
		Mode:          mode,
		BlueprintPath: *blueprintFlag,
		BlueprintPlan: strings.ToLower(*planFlag),
		ProjectPath:   *projectFlag,
		OutDir:        *outDirFlag,
		Library:       *libFlag,
		Manager:       *managerFlag,
		TimeRes:       *timeResFlag,
		DUT:           *dutFlag,
		TB:            *tbFlag,
		Generics:      generics,
		Seed:          seed,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: faults.ExitCode, Message: err.Error()}
	}
	return config, false, nil
}
