package runner

import (
	"strings"

	"github.com/vk/chipflow/internal/faults"
)

// Mode selects how much of the backend workflow to run. Modes form a total
// order; "run through mode X" is a range check over that order.
type Mode int

const (
	// ModeCompile builds the required targets and stops.
	ModeCompile Mode = iota
	// ModeSimulate compiles and runs each trial in batch.
	ModeSimulate
	// ModeGUI compiles and launches the tool interactively.
	ModeGUI
)

// ParseMode converts the CLI spelling of a run mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "com":
		return ModeCompile, nil
	case "sim":
		return ModeSimulate, nil
	case "gui":
		return ModeGUI, nil
	}
	return 0, faults.Configurationf("invalid run mode %q: expected com, sim or gui", s)
}

func (m Mode) String() string {
	switch m {
	case ModeCompile:
		return "com"
	case ModeSimulate:
		return "sim"
	case ModeGUI:
		return "gui"
	}
	return "unknown"
}

// AtLeast reports whether this mode includes the workflow up through other.
func (m Mode) AtLeast(other Mode) bool { return m >= other }
