// Package blueprint models the topologically sorted source listing that the
// build-graph compiler consumes.
package blueprint

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/vk/chipflow/internal/faults"
)

// Accepted blueprint plans. The tsv plan carries no dependency information;
// the json plan lists an explicit dependency-path sequence per entry.
const (
	PlanTSV  = "tsv"
	PlanJSON = "json"
)

// Blueprint is the ordered collection of source entries for one run. The
// producer emits entries already topologically sorted with respect to
// dependency, and that order is preserved exactly. Read-only after Load.
type Blueprint struct {
	entries []Entry
	plan    string
	file    string
}

type jsonEntry struct {
	Fileset      string   `json:"fileset"`
	Library      string   `json:"library"`
	Filepath     string   `json:"filepath"`
	Dependencies []string `json:"dependencies"`
}

// Load reads the blueprint listing at path according to plan. A missing
// file or unrecognized plan is a configuration error.
func Load(path, plan string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faults.Configurationf("cannot read blueprint %q: %v", path, err)
	}
	bp := &Blueprint{plan: plan, file: path}
	switch plan {
	case PlanTSV:
		for i, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			fields := strings.Split(line, "\t")
			if len(fields) != 3 {
				return nil, faults.Configurationf("blueprint %q line %d: expected fileset, library and path", path, i+1)
			}
			bp.entries = append(bp.entries, NewEntry(fields[0], fields[1], fields[2], nil))
		}
	case PlanJSON:
		var records []jsonEntry
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, faults.Configurationf("cannot decode blueprint %q: %v", path, err)
		}
		for _, r := range records {
			bp.entries = append(bp.entries, NewEntry(r.Fileset, r.Library, r.Filepath, r.Dependencies))
		}
	default:
		return nil, faults.Configurationf("unrecognized blueprint plan %q", plan)
	}
	return bp, nil
}

// Entries returns the topologically sorted list of entries.
func (b *Blueprint) Entries() []Entry { return b.entries }

// Plan returns which plan was used to load the blueprint.
func (b *Blueprint) Plan() string { return b.plan }

// File returns the path the entries were loaded from.
func (b *Blueprint) File() string { return b.file }
