package matrix

import "github.com/vk/chipflow/internal/faults"

// Row is one declarative test-table row before expansion.
type Row struct {
	DUT    string
	TB     string
	Trials []Trial
}

// Trial is one generics/seed combination within a row.
type Trial struct {
	Generics []Generic
	Seed     *uint32
}

// Expand cross-expands the table into the run's ordered module sequence. A
// row with no trials yields exactly one module with empty generics and no
// seed; each trial yields one module inheriting the row's dut and tb. A
// valid override module replaces the entire table. A result with no valid
// module is a configuration error, reported before any execution begins.
func Expand(rows []Row, override *Module) ([]Module, error) {
	var modules []Module
	for _, row := range rows {
		if len(row.Trials) == 0 {
			modules = append(modules, Module{DUT: row.DUT, TB: row.TB})
			continue
		}
		for _, trial := range row.Trials {
			modules = append(modules, Module{
				DUT:      row.DUT,
				TB:       row.TB,
				Generics: trial.Generics,
				Seed:     trial.Seed,
			})
		}
	}
	if override != nil && override.Valid() {
		modules = []Module{*override}
	}
	if len(modules) == 0 {
		return nil, faults.Configurationf("no tests defined")
	}
	for _, m := range modules {
		if !m.Valid() {
			return nil, faults.Configurationf("no tests defined: a test needs a dut or a tb")
		}
	}
	return modules, nil
}
