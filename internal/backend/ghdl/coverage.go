package ghdl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/chipflow/internal/ctxlog"
)

// coverageFile mirrors the JSON the simulator drops in the output directory
// when elaboration runs with --coverage.
type coverageFile struct {
	Outputs []coverageTable `json:"outputs"`
}

// coverageTable holds per-line hit counts for one covered source file. Keys
// of Result are decimal line numbers.
type coverageTable struct {
	File   string         `json:"file"`
	Result map[string]int `json:"result"`
}

// collectCoverage turns the raw coverage-*.json files in outDir into the
// annotated report for the design under test, consuming the raw files.
// Coverage problems never fail a trial; they are logged and skipped.
func collectCoverage(ctx context.Context, outDir, dutFile, reportPath string) {
	logger := ctxlog.FromContext(ctx)
	raws, err := filepath.Glob(filepath.Join(outDir, "coverage-*.json"))
	if err != nil {
		return
	}
	for _, raw := range raws {
		data, err := os.ReadFile(raw)
		if err != nil {
			logger.Error("cannot read coverage data", "path", raw, "error", err)
			continue
		}
		var cov coverageFile
		if err := json.Unmarshal(data, &cov); err != nil {
			logger.Error("cannot decode coverage data", "path", raw, "error", err)
			continue
		}
		for _, table := range cov.Outputs {
			if dutFile == "" || table.File != dutFile {
				continue
			}
			if err := writeCoverageReport(table, reportPath); err != nil {
				logger.Error("cannot write coverage report", "path", reportPath, "error", err)
			}
		}
		os.Remove(raw)
	}
}

// writeCoverageReport annotates the covered source with per-line hit counts,
// marking never-hit lines, preceded by a hit/total summary.
func writeCoverageReport(table coverageTable, path string) error {
	hit := 0
	for _, count := range table.Result {
		if count > 0 {
			hit++
		}
	}
	total := len(table.Result)
	summary := "0/0 100.0%"
	if total > 0 {
		summary = fmt.Sprintf("%d/%d %.1f%%", hit, total, float64(hit)/float64(total)*100.0)
	}

	src, err := os.ReadFile(table.File)
	if err != nil {
		return err
	}

	var b strings.Builder
	line := func(num, no, text string) {
		fmt.Fprintf(&b, "%7s%6s%s\n", num, no, text)
	}
	line("-:", "0:", "Source: "+table.File)
	line("-:", "0:", "Summary: "+summary)
	for i, text := range strings.Split(strings.TrimSuffix(string(src), "\n"), "\n") {
		no := strconv.Itoa(i + 1)
		num := "-"
		if count, ok := table.Result[no]; ok {
			num = strconv.Itoa(count)
			if count == 0 {
				num = "#####"
			}
		}
		line(num+":", no+":", strings.TrimRight(text, " \t\r"))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
