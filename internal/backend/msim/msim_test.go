package msim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chipflow/internal/blueprint"
	"github.com/vk/chipflow/internal/graph"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/runner"
)

func TestRules(t *testing.T) {
	t.Parallel()

	b, err := New(Options{Mode: runner.ModeSimulate, OutDir: "out"})
	require.NoError(t, err)

	table, vars := b.Rules()
	require.Len(t, table, 3)
	assert.Equal(t, "vhdl", table[blueprint.FilesetVHDL].Name)
	assert.Equal(t, "vlog", table[blueprint.FilesetVerilog].Name)
	assert.Equal(t, "sysv", table[blueprint.FilesetSystemVerilog].Name)
	assert.Contains(t, table[blueprint.FilesetVHDL].Command, "vcom")
	assert.Contains(t, table[blueprint.FilesetSystemVerilog].Command, "-sv")

	require.Len(t, vars, 2)
	assert.Contains(t, vars[1].Value, "compile.log")
}

func TestNew_PointsModelsimAtOutDir(t *testing.T) {
	t.Setenv("MODELSIM", "")

	dir := t.TempDir()
	_, err := New(Options{Mode: runner.ModeSimulate, OutDir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "modelsim.ini"), os.Getenv("MODELSIM"))
}

func TestEnsureIni_ExistingIniLeftAlone(t *testing.T) {
	t.Setenv("MODELSIM", "")

	dir := t.TempDir()
	b, err := New(Options{Mode: runner.ModeSimulate, OutDir: dir})
	require.NoError(t, err)

	ini := filepath.Join(dir, "modelsim.ini")
	require.NoError(t, os.WriteFile(ini, []byte("[Library]\nwork = work\n"), 0o644))

	b.ensureIni(context.Background())

	data, err := os.ReadFile(ini)
	require.NoError(t, err)
	assert.Equal(t, "[Library]\nwork = work\n", string(data))
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
		{
			name: "zero errors",
			log:  "# run -all\n# ** Note: test done\n# Errors: 0, Warnings: 3\n# quit\n",
			pass: true,
		},
		{
			name: "nonzero errors",
			log:  "# run -all\n# ** Error: assertion failed\n# Errors: 2, Warnings: 0\n",
			pass: false,
		},
		{
			name: "no summary line",
			log:  "# vsim crashed before summarizing\n",
			pass: false,
		},
		{
			name: "empty log",
			log:  "",
			pass: false,
		},
		{
			name: "latest summary wins",
			log:  "# Errors: 1, Warnings: 0\n# restarted\n# Errors: 0, Warnings: 0\n",
			pass: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.pass, b.ClassifyLog(tc.log))
		})
	}
}

func TestBuildDoFile_Batch(t *testing.T) {
	t.Parallel()

	b, err := New(Options{Mode: runner.ModeSimulate, OutDir: "out", Library: "gfx"})
	require.NoError(t, err)
	b.top = "top_tb"
	b.libs = []graph.Library{{Name: "work", Path: "work"}, {Name: "gfx", Path: "gfx"}}

	m := matrix.Module{
		TB:       "top_tb",
		Generics: []matrix.Generic{{Key: "WIDTH", Value: "8"}},
	}
	do := b.buildDoFile("out/run.do", "out/top_tb.wlf", m)
	text := do.Data()

	assert.Contains(t, text, "vmap work work\n")
	assert.Contains(t, text, "vmap gfx gfx\n")
	assert.Contains(t, text, "eval vsim -onfinish stop -wlf out/top_tb.wlf +nowarn3116 -gWIDTH=8 -work gfx gfx.top_tb\n")
	assert.Contains(t, text, "run -all\n")
	assert.Contains(t, text, "quit\n")
	assert.NotContains(t, text, "-voptargs=+acc")
	assert.NotContains(t, text, "add wave")
}

func TestBuildDoFile_GUI(t *testing.T) {
	t.Parallel()

	b, err := New(Options{Mode: runner.ModeGUI, OutDir: "out"})
	require.NoError(t, err)
	b.top = "top_tb"

	do := b.buildDoFile("out/run.do", "out/top_tb.wlf", matrix.Module{TB: "top_tb"})
	text := do.Data()

	assert.Contains(t, text, "-voptargs=+acc")
	assert.Contains(t, text, "add wave *\n")
	assert.NotContains(t, text, "run -all")
	assert.NotContains(t, text, "quit")
}

func TestBuildDoFile_GUIWithWaveFile(t *testing.T) {
	t.Parallel()

	b, err := New(Options{
		Mode:   runner.ModeGUI,
		OutDir: "out",
		Entries: []blueprint.Entry{
			blueprint.NewEntry("VHDL", "work", "rtl/top.vhd", nil),
			blueprint.NewEntry("WAV", "work", "sim/layout.do", nil),
		},
	})
	require.NoError(t, err)
	b.top = "top_tb"

	text := b.buildDoFile("out/run.do", "out/top_tb.wlf", matrix.Module{TB: "top_tb"}).Data()

	assert.Contains(t, text, "do sim/layout.do\n")
	assert.NotContains(t, text, "add wave *")
}
