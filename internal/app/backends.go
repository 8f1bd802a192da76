package app

import (
	"github.com/vk/chipflow/internal/backend/ghdl"
	"github.com/vk/chipflow/internal/backend/msim"
	"github.com/vk/chipflow/internal/blueprint"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/runner"
	"github.com/vk/chipflow/internal/units"
)

// newBackend instantiates the vendor integration named in the configuration.
func (a *App) newBackend(entries []blueprint.Entry, resolver *units.Resolver) (runner.Backend, error) {
	cfg := a.config
	switch cfg.BackendName {
	case "ghdl":
		return ghdl.New(ghdl.Options{
			Mode:    cfg.Mode,
			OutDir:  cfg.OutDir,
			Library: cfg.Library,
			TimeRes: cfg.TimeRes,
			Units:   resolver,
		})
	case "msim":
		return msim.New(msim.Options{
			Mode:    cfg.Mode,
			OutDir:  cfg.OutDir,
			Library: cfg.Library,
			Units:   resolver,
			Entries: entries,
		})
	}
	return nil, faults.Configurationf("unknown backend %q", cfg.BackendName)
}
