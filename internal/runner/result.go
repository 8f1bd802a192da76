package runner

import (
	"time"

	"github.com/vk/chipflow/internal/matrix"
)

// Result records the outcome of one executed module.
type Result struct {
	Module  matrix.Module
	Passed  bool
	LogPath string
	Elapsed time.Duration
	// Err is the recorded compile or execution failure; nil when passed.
	Err error
}

// Summary aggregates a whole run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Elapsed time.Duration
	Results []Result
}

// Ok reports whether every trial passed.
func (s *Summary) Ok() bool {
	return s.Passed == s.Total
}

func (s *Summary) record(r Result) {
	s.Results = append(s.Results, r)
	if r.Passed {
		s.Passed++
	} else {
		s.Failed++
	}
}
