package ghdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chipflow/internal/blueprint"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/runner"
)

func TestNew_RejectsGUI(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Mode: runner.ModeGUI})
	var cfgErr *faults.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRules(t *testing.T) {
	t.Parallel()

	b, err := New(Options{Mode: runner.ModeSimulate})
	require.NoError(t, err)

	table, vars := b.Rules()
	require.Contains(t, table, blueprint.FilesetVHDL)
	assert.NotContains(t, table, blueprint.FilesetVerilog)
	assert.Equal(t, "vhdl", table[blueprint.FilesetVHDL].Name)

	require.Len(t, vars, 2)
	assert.Equal(t, "lib", vars[0].Name)
	assert.Equal(t, "-a --std=08 --ieee=synopsys --workdir=build -P=build", vars[1].Value)
}

func TestClassifyLog(t *testing.T) {
	t.Parallel()

	b, err := New(Options{Mode: runner.ModeSimulate})
	require.NoError(t, err)

	testCases := []struct {
		name string
		log  string
		pass bool
	}{
		{name: "clean run", log: "simulation finished @1000ns\n", pass: true},
		{name: "empty log", log: "", pass: true},
		{name: "assertion error", log: "top_tb.vhd:42:9:@1ns:(assertion error): check failed\n", pass: false},
		{name: "report error", log: "top_tb.vhd:10:5:@0ms:(report error): bad state\n", pass: false},
		{name: "uppercase severity", log: "top_tb.vhd:42:9:@1ns:(Assertion Error): check failed\n", pass: false},
		{name: "word error without severity tag", log: "checking error counter rollover\n", pass: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.pass, b.ClassifyLog(tc.log))
		})
	}
}
