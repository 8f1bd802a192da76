package msim

import (
	"github.com/vk/chipflow/internal/matrix"
	"github.com/vk/chipflow/internal/runner"
	"github.com/vk/chipflow/internal/script"
)

// buildDoFile emits the TCL DO file driving one vsim invocation. The script
// maps every compiled library, elaborates the top-level with the trial's
// generics, then either hands control to the user (gui) or runs to
// completion and quits (sim).
func (b *Backend) buildDoFile(path, wlfPath string, m matrix.Module) *script.Script {
	do := script.New(path)

	do.CommentStep("map compiled libraries")
	for _, lib := range b.libs {
		do.Push("vmap", lib.Name, lib.Path)
	}

	do.CommentStep("load design")
	sim := []string{"eval vsim -onfinish stop", "-wlf", wlfPath, "+nowarn3116"}
	if b.mode.AtLeast(runner.ModeGUI) {
		sim = append(sim, "-voptargs=+acc")
	}
	for _, g := range m.Generics {
		sim = append(sim, "-g"+g.String())
	}
	sim = append(sim, "-work", b.workLib, b.workLib+"."+b.top)
	do.Push(sim...)

	if b.mode.AtLeast(runner.ModeGUI) {
		do.CommentStep("prepare waveform view")
		if wave := b.waveFile(); wave != "" {
			do.Push("do", wave)
		} else {
			do.Push("add wave *")
		}
	} else {
		do.CommentStep("run simulation")
		do.Push("run -all")
		do.Push("quit")
	}
	return do
}

// waveFile returns the path of the first auxiliary wave-layout entry in the
// blueprint, or empty when none is declared.
func (b *Backend) waveFile() string {
	for _, e := range b.entries {
		if e.Is(FilesetWave) {
			return e.Path()
		}
	}
	return ""
}
