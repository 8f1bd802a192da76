package project

import "github.com/hashicorp/hcl/v2"

// trialBlock is a `trial` block within a test: one generics/seed
// combination. Generics stay an undecoded expression so their source order
// can be preserved during translation.
type trialBlock struct {
	Generics hcl.Expression `hcl:"generics,optional"`
	Seed     *uint32        `hcl:"seed,optional"`
}

// testBlock is a `test` block: one row of the declarative test table.
type testBlock struct {
	Name   string        `hcl:"name,label"`
	DUT    string        `hcl:"dut,optional"`
	TB     string        `hcl:"tb,optional"`
	Trials []*trialBlock `hcl:"trial,block"`
}

// projectBlock carries tool metadata backends consult: the project name,
// the working library and the default target device.
type projectBlock struct {
	Name    string   `hcl:"name,optional"`
	Library string   `hcl:"library,optional"`
	Part    string   `hcl:"part,optional"`
	Remain  hcl.Body `hcl:",remain"`
}

// fileRoot decodes the top-level blocks of a project file.
type fileRoot struct {
	Project *projectBlock `hcl:"project,block"`
	Tests   []*testBlock  `hcl:"test,block"`
	Remain  hcl.Body      `hcl:",remain"`
}
