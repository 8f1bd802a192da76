package graph

import (
	"sort"

	"github.com/vk/chipflow/internal/blueprint"
	"github.com/vk/chipflow/internal/faults"
)

// RuleTable maps a normalized builtin fileset tag to the build rule used for
// entries of that fileset. Each backend supplies its own table.
type RuleTable map[string]Rule

// Library is one working library observed across builtin entries, as the
// (name, mapped path) pair backends register before invoking a simulator.
type Library struct {
	Name string
	Path string
}

// Compile maps each builtin entry to exactly one build edge with a
// content-addressed output target, wiring declared dependencies to the
// addressed names of their paths. Non-builtin entries are skipped entirely.
// Edge order follows entry order. The set of working libraries seen across
// builtin entries is returned alongside the graph.
//
// A dependency whose target was never emitted as the output of an earlier
// edge is a GraphIntegrityError, surfaced here rather than as an opaque
// failure from the external executor.
func Compile(entries []blueprint.Entry, table RuleTable, vars ...Var) (*Graph, []Library, error) {
	g := New()
	for _, v := range vars {
		g.DefineVar(v.Name, v.Value)
	}
	// Declare rules in a stable order so repeated runs emit identical files.
	filesets := make([]string, 0, len(table))
	for fset := range table {
		filesets = append(filesets, fset)
	}
	sort.Strings(filesets)
	for _, fset := range filesets {
		g.AddRule(table[fset].Name, table[fset].Command)
	}

	produced := make(map[string]bool)
	seen := make(map[string]bool)
	var libs []Library
	for _, entry := range entries {
		if !entry.IsBuiltin() {
			continue
		}
		rule, ok := table[entry.Fileset()]
		if !ok {
			return nil, nil, faults.Configurationf("fileset %q is not supported by this backend", entry.Fileset())
		}
		out := TargetID(entry.Path())
		deps := make([]string, 0, len(entry.Deps()))
		for _, dep := range entry.Deps() {
			id := TargetID(dep)
			if !produced[id] {
				return nil, nil, &faults.GraphIntegrityError{Path: entry.Path(), Dep: dep, Target: id}
			}
			deps = append(deps, id)
		}
		g.AddEdge(Edge{
			Rule:         rule.Name,
			Outputs:      []string{out},
			Inputs:       []string{entry.Path()},
			ImplicitDeps: deps,
			Bindings:     map[string]string{"lib": entry.Library()},
		})
		produced[out] = true
		if !seen[entry.Library()] {
			seen[entry.Library()] = true
			libs = append(libs, Library{Name: entry.Library(), Path: entry.Library()})
		}
	}
	return g, libs, nil
}
