// Package script builds generated tool scripts line by line. Backends use
// it to emit the command files (DO files, TCL) handed to vendor tools.
package script

import (
	"os"
	"strings"
)

// Script accumulates the lines of one generated script.
type Script struct {
	path   string
	indent int
	lines  []string
}

// New creates an empty script destined for path.
func New(path string) *Script {
	return &Script{path: path}
}

// Path returns where the script will be saved.
func (s *Script) Path() string { return s.path }

// Push appends one line at the current indentation, joining tokens with
// single spaces. With no tokens it appends a blank line.
func (s *Script) Push(tokens ...string) *Script {
	line := strings.Join(tokens, " ")
	if line != "" {
		line = strings.Repeat("    ", s.indent) + line
	}
	s.lines = append(s.lines, line)
	return s
}

// Comment appends a comment line.
func (s *Script) Comment(text string) *Script {
	return s.Push("#", text)
}

// CommentStep appends a blank line and a comment marking the start of a
// workflow phase.
func (s *Script) CommentStep(text string) *Script {
	s.Push()
	return s.Push("# ----", text)
}

// Indent increases the indentation of subsequent lines.
func (s *Script) Indent() *Script {
	s.indent++
	return s
}

// Dedent decreases the indentation of subsequent lines.
func (s *Script) Dedent() *Script {
	if s.indent > 0 {
		s.indent--
	}
	return s
}

// Data returns the full script text.
func (s *Script) Data() string {
	return strings.Join(s.lines, "\n") + "\n"
}

// SaveIfChanged writes the script to its path unless the on-disk contents
// already match, keeping mtime-based rebuild checks downstream meaningful.
func (s *Script) SaveIfChanged() error {
	data := s.Data()
	if existing, err := os.ReadFile(s.path); err == nil && string(existing) == data {
		return nil
	}
	return os.WriteFile(s.path, []byte(data), 0o644)
}
