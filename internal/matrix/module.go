// Package matrix expands a declarative test table into the ordered sequence
// of concrete test modules for a run. Pure data transforms; nothing here
// touches the filesystem or spawns processes.
package matrix

import (
	"strconv"
	"strings"

	"github.com/vk/chipflow/internal/faults"
)

// Generic is one top-level generic/parameter override. The order generics
// appear in is significant: it is encoded into the module's directory name.
type Generic struct {
	Key   string
	Value string
}

// ParseGeneric parses a KEY=VALUE command-line argument.
func ParseGeneric(s string) (Generic, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return Generic{}, faults.Configurationf("key-value pair %q is missing <value>", s)
	}
	return Generic{Key: key, Value: value}, nil
}

func (g Generic) String() string {
	return g.Key + "=" + g.Value
}

// Module is one concrete (dut, tb, generics, seed) combination to execute.
type Module struct {
	DUT      string
	TB       string
	Generics []Generic
	Seed     *uint32
}

// Valid reports whether the module names at least one unit to operate on.
func (m Module) Valid() bool {
	return m.DUT != "" || m.TB != ""
}

// Top returns the top-level unit driving compilation and execution: the
// testbench when one is set, otherwise the design under test.
func (m Module) Top() string {
	if m.TB != "" {
		return m.TB
	}
	return m.DUT
}

// valueCleaner makes generic values filesystem-safe within directory names.
var valueCleaner = strings.NewReplacer(".", "-", "/", "-", `\`, "-")

// DirName returns the unique, filesystem-safe directory name for this
// module's regression artifacts. Every distinguishing field is encoded into
// the name, so two modules differing in generics or seed never collide.
func (m Module) DirName() string {
	var b strings.Builder
	b.WriteString(m.DUT)
	if m.TB != "" {
		if m.DUT != "" {
			b.WriteString("__")
		}
		b.WriteString(m.TB)
	}
	for _, g := range m.Generics {
		b.WriteString("_" + g.Key + "=" + valueCleaner.Replace(g.Value))
	}
	if m.Seed != nil {
		b.WriteString("_seed=" + strconv.FormatUint(uint64(*m.Seed), 10))
	}
	return b.String()
}

// String renders the module in the human-readable trial form used by run
// progress output.
func (m Module) String() string {
	var b strings.Builder
	b.WriteString(m.TB)
	if m.DUT != "" {
		if m.TB != "" {
			b.WriteString("::")
		}
		b.WriteString(m.DUT)
	}
	if len(m.Generics) > 0 {
		parts := make([]string, len(m.Generics))
		for i, g := range m.Generics {
			parts[i] = g.String()
		}
		b.WriteString(" (" + strings.Join(parts, " ") + ")")
	}
	if m.Seed != nil {
		b.WriteString(" #" + strconv.FormatUint(uint64(*m.Seed), 10))
	}
	return b.String()
}
