package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/runner"
)

func TestParse_FullArguments(t *testing.T) {
	args := []string{
		"--backend", "msim",
		"--run", "com",
		"--blueprint", "build/blueprint.tsv",
		"--plan", "tsv",
		"--project", "chip.hcl",
		"--out-dir", "build",
		"--dut", "top",
		"--tb", "top_tb",
		"--lib", "gfx",
		"-g", "WIDTH=8",
		"--generic", "DEPTH=16",
		"--seed", "42",
		"--time-res", "ns",
	}
	out := &bytes.Buffer{}

	config, shouldExit, err := Parse(args, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "msim", config.BackendName)
	assert.Equal(t, runner.ModeCompile, config.Mode)
	assert.Equal(t, "build/blueprint.tsv", config.BlueprintPath)
	assert.Equal(t, "tsv", config.BlueprintPlan)
	assert.Equal(t, "chip.hcl", config.ProjectPath)
	assert.Equal(t, "build", config.OutDir)
	assert.Equal(t, "top", config.DUT)
	assert.Equal(t, "top_tb", config.TB)
	assert.Equal(t, "gfx", config.Library)
	assert.Equal(t, "ns", config.TimeRes)
	assert.Equal(t, []matrix.Generic{
		{Key: "WIDTH", Value: "8"},
		{Key: "DEPTH", Value: "16"},
	}, config.Generics)
	require.NotNil(t, config.Seed)
	assert.Equal(t, uint32(42), *config.Seed)
}

func TestParse_EnvironmentFallback(t *testing.T) {
	t.Setenv("ORBIT_BLUEPRINT", "env/blueprint.tsv")
	t.Setenv("ORBIT_BLUEPRINT_PLAN", "json")
	t.Setenv("ORBIT_OUT_DIR", "env-out")
	t.Setenv("ORBIT_TB_NAME", "env_tb")

	config, shouldExit, err := Parse([]string{"--backend", "ghdl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "env/blueprint.tsv", config.BlueprintPath)
	assert.Equal(t, "json", config.BlueprintPlan)
	assert.Equal(t, "env-out", config.OutDir)
	assert.Equal(t, "env_tb", config.TB)
}

func TestParse_FlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("ORBIT_BLUEPRINT", "env/blueprint.tsv")

	config, _, err := Parse([]string{"--backend", "ghdl", "--blueprint", "flag/blueprint.tsv"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "flag/blueprint.tsv", config.BlueprintPath)
}

func TestParse_RandomSeed(t *testing.T) {
	t.Setenv("ORBIT_BLUEPRINT", "env/blueprint.tsv")

	config, _, err := Parse([]string{"--backend", "ghdl", "--seed", "random"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotNil(t, config.Seed)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	_, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_NoBackendPrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}

	_, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	t.Setenv("ORBIT_BLUEPRINT", "")

	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "bad mode", args: []string{"--backend", "ghdl", "--blueprint", "b.tsv", "--run", "batch"}},
		{name: "bad seed", args: []string{"--backend", "ghdl", "--blueprint", "b.tsv", "--seed", "-1"}},
		{name: "bad generic", args: []string{"--backend", "ghdl", "--blueprint", "b.tsv", "-g", "WIDTH"}},
		{name: "bad log format", args: []string{"--backend", "ghdl", "--blueprint", "b.tsv", "--log-format", "xml"}},
		{name: "bad log level", args: []string{"--backend", "ghdl", "--blueprint", "b.tsv", "--log-level", "trace"}},
		{name: "missing blueprint", args: []string{"--backend", "ghdl"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			// Every failure exits 101, configuration mistakes included.
			assert.Equal(t, faults.ExitCode, exitErr.Code)
		})
	}
}
