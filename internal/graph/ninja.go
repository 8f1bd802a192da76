package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// WriteTo emits the graph in the build executor's input syntax: variable
// definitions, then rule blocks, then build edges with per-edge bindings.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, v := range g.vars {
		fmt.Fprintf(&b, "%s = %s\n", v.Name, v.Value)
	}
	if len(g.vars) > 0 {
		b.WriteByte('\n')
	}
	for _, r := range g.rules {
		fmt.Fprintf(&b, "rule %s\n  command = %s\n\n", r.Name, r.Command)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "build %s: %s %s",
			strings.Join(e.Outputs, " "), e.Rule, strings.Join(e.Inputs, " "))
		if len(e.ImplicitDeps) > 0 {
			fmt.Fprintf(&b, " | %s", strings.Join(e.ImplicitDeps, " "))
		}
		b.WriteByte('\n')
		keys := make([]string, 0, len(e.Bindings))
		for k := range e.Bindings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s = %s\n", k, e.Bindings[k])
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// SaveFile serializes the graph to path. An up-to-date file is left
// untouched so the executor's own change tracking is not perturbed.
func (g *Graph) SaveFile(path string) error {
	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		return err
	}
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, buf.Bytes()) {
		return nil
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
