package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/matrix"
)

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chip.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullProject(t *testing.T) {
	t.Parallel()

	path := writeProject(t, `
project {
  name    = "soc"
  library = "gfx"
  part    = "xc7a35t"
}

test "alu" {
  dut = "alu"
  tb  = "alu_tb"

  trial {
    generics = {
      WIDTH = 8
    }
    seed = 42
  }

  trial {
    generics = {
      WIDTH = 16
    }
  }
}

test "fifo" {
  tb = "fifo_tb"
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "soc", model.Name)
	assert.Equal(t, "gfx", model.Library)
	assert.Equal(t, "xc7a35t", model.Part)

	require.Len(t, model.Tests, 2)
	alu := model.Tests[0]
	assert.Equal(t, "alu", alu.DUT)
	assert.Equal(t, "alu_tb", alu.TB)
	require.Len(t, alu.Trials, 2)
	assert.Equal(t, []matrix.Generic{{Key: "WIDTH", Value: "8"}}, alu.Trials[0].Generics)
	require.NotNil(t, alu.Trials[0].Seed)
	assert.Equal(t, uint32(42), *alu.Trials[0].Seed)
	assert.Nil(t, alu.Trials[1].Seed)

	fifo := model.Tests[1]
	assert.Empty(t, fifo.DUT)
	assert.Equal(t, "fifo_tb", fifo.TB)
	assert.Empty(t, fifo.Trials)
}

func TestLoad_GenericOrderPreserved(t *testing.T) {
	t.Parallel()

	path := writeProject(t, `
test "ordered" {
  tb = "top_tb"
  trial {
    generics = {
      ZULU  = 1
      ALPHA = 2
      MIKE  = 3
    }
  }
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Tests, 1)
	require.Len(t, model.Tests[0].Trials, 1)

	gens := model.Tests[0].Trials[0].Generics
	require.Len(t, gens, 3)
	assert.Equal(t, "ZULU", gens[0].Key)
	assert.Equal(t, "ALPHA", gens[1].Key)
	assert.Equal(t, "MIKE", gens[2].Key)
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Parallel()

	model, err := NewLoader().Load(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, model.Tests)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	model, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Empty(t, model.Tests)
}

func TestLoad_MalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeProject(t, `test "broken" {`)

	_, err := NewLoader().Load(context.Background(), path)
	var cfgErr *faults.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_BadGenerics(t *testing.T) {
	t.Parallel()

	path := writeProject(t, `
test "bad" {
  tb = "top_tb"
  trial {
    generics = "not an object"
  }
}
`)

	_, err := NewLoader().Load(context.Background(), path)
	var cfgErr *faults.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "bad")
}
