package graph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetID_Deterministic(t *testing.T) {
	t.Parallel()

	id1 := TargetID("rtl/alu.vhd")
	id2 := TargetID("rtl/alu.vhd")
	assert.Equal(t, id1, id2)
}

func TestTargetID_Format(t *testing.T) {
	t.Parallel()

	id := TargetID("rtl/alu.vhd")
	require.True(t, strings.HasPrefix(id, "build/alu."), "got %q", id)
	suffix := strings.TrimPrefix(id, "build/alu.")
	assert.Len(t, suffix, 8)
}

func TestTargetID_SameBasenameDistinctPaths(t *testing.T) {
	t.Parallel()

	a := TargetID("rtl/core/alu.vhd")
	b := TargetID("rtl/dsp/alu.vhd")
	assert.NotEqual(t, a, b, "distinct paths sharing a basename must not alias")
}

func TestTargetID_NoCollisions(t *testing.T) {
	t.Parallel()

	seen := make(map[string]string, 10000)
	for i := 0; i < 10000; i++ {
		path := fmt.Sprintf("rtl/gen/block_%d/unit.vhd", i)
		id := TargetID(path)
		if prev, ok := seen[id]; ok {
			t.Fatalf("collision: %q and %q both map to %q", prev, path, id)
		}
		seen[id] = path
	}
}
