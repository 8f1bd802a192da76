// Package project loads the project file: tool metadata and the declarative
// test table the matrix is expanded from.
package project

import (
	"context"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/chipflow/internal/ctxlog"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/matrix"
)

// Model is the format-agnostic view of the project file consumed by the
// rest of the program.
type Model struct {
	Name    string
	Library string
	Part    string
	Tests   []matrix.Row
}

// Loader reads HCL project files.
type Loader struct{}

// NewLoader creates a new project file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the project file at path. An empty path or a missing file
// yields an empty model: runs driven purely by an override module need no
// project file. Parse and decode failures are configuration errors.
func (l *Loader) Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &Model{}
	if path == "" {
		return model, nil
	}
	if _, err := os.Stat(path); err != nil {
		logger.Debug("no project file found", "path", path)
		return model, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, faults.Configurationf("failed to parse project file %s: %s", path, diags.Error())
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, faults.Configurationf("failed to decode project file %s: %s", path, diags.Error())
	}

	if root.Project != nil {
		model.Name = root.Project.Name
		model.Library = root.Project.Library
		model.Part = root.Project.Part
	}
	for _, t := range root.Tests {
		row, err := l.translateTest(t)
		if err != nil {
			return nil, err
		}
		model.Tests = append(model.Tests, row)
	}
	logger.Debug("project file loaded", "path", path, "tests", len(model.Tests))
	return model, nil
}
