// Package units queries the package manager for design unit metadata: the
// file a unit is declared in and the generics it exposes.
package units

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/proc"
)

// GenericDecl is one generic declared by a unit. A nil Default means the
// unit cannot elaborate without a caller-supplied value.
type GenericDecl struct {
	Name    string  `json:"name"`
	Default *string `json:"default"`
}

// Unit is the metadata record for one design unit.
type Unit struct {
	Name     string        `json:"name"`
	File     string        `json:"file"`
	Generics []GenericDecl `json:"generics"`
}

// VerifyGenerics checks that every generic without a default received a
// value from the given overrides.
func (u *Unit) VerifyGenerics(gens []matrix.Generic) error {
	given := make(map[string]bool, len(gens))
	for _, g := range gens {
		given[g.Key] = true
	}
	var missing []string
	for _, decl := range u.Generics {
		if decl.Default == nil && !given[decl.Name] {
			missing = append(missing, decl.Name)
		}
	}
	if len(missing) > 0 {
		return faults.Configurationf("missing value for generic %q of unit %q", strings.Join(missing, ", "), u.Name)
	}
	return nil
}

// Resolver fetches unit metadata by invoking the managing tool. Results are
// cached per unit name so pre-flight resolution and per-trial binding do not
// spawn the manager twice.
type Resolver struct {
	manager string
	cache   map[string]*Unit
}

// NewResolver creates a resolver backed by the named manager binary.
func NewResolver(manager string) *Resolver {
	return &Resolver{manager: manager, cache: make(map[string]*Unit)}
}

// Get returns the metadata for the named unit. An unknown unit or an
// unreadable manager response is a configuration error.
func (r *Resolver) Get(ctx context.Context, name string) (*Unit, error) {
	if u, ok := r.cache[name]; ok {
		return u, nil
	}
	out, status := proc.NewCommand(r.manager, "get", "--json", name).CaptureToString(ctx)
	if status.IsErr() || strings.TrimSpace(out) == "" {
		return nil, faults.Configurationf("failed to get metadata for unit %q", name)
	}
	u := &Unit{}
	if err := json.Unmarshal([]byte(out), u); err != nil {
		return nil, faults.Configurationf("cannot decode metadata for unit %q: %v", name, err)
	}
	if u.Name == "" {
		u.Name = name
	}
	r.cache[name] = u
	return u, nil
}
