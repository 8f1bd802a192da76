// Package graph compiles blueprint entries into an incremental build graph
// and serializes it for the external build executor.
package graph

// Var is a graph-level variable definition.
type Var struct {
	Name  string
	Value string
}

// Rule is a named command template. Templates reference ${in}, ${out} and
// custom bindings resolved per edge.
type Rule struct {
	Name    string
	Command string
}

// Edge is one build statement: a rule application producing outputs from
// inputs, ordered after its implicit dependencies.
type Edge struct {
	Rule         string
	Outputs      []string
	Inputs       []string
	ImplicitDeps []string
	Bindings     map[string]string
}

// Graph is the dependency graph handed to the external build executor.
// Edges keep the order they were added in; combined with the blueprint's
// topological pre-sort this hands the executor a valid acyclic graph
// without a topological pass of its own.
type Graph struct {
	vars  []Var
	rules []Rule
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// DefineVar declares a graph-level variable.
func (g *Graph) DefineVar(name, value string) {
	g.vars = append(g.vars, Var{Name: name, Value: value})
}

// AddRule declares a command template for edges to reference.
func (g *Graph) AddRule(name, command string) {
	g.rules = append(g.rules, Rule{Name: name, Command: command})
}

// AddEdge appends a build edge.
func (g *Graph) AddEdge(e Edge) {
	g.edges = append(g.edges, e)
}

// Edges returns the edges in emission order.
func (g *Graph) Edges() []Edge { return g.edges }

// Rules returns the declared rules in declaration order.
func (g *Graph) Rules() []Rule { return g.rules }
