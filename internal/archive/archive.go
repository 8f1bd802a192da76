// Package archive persists per-module regression artifacts under a
// deterministic directory name.
package archive

import (
	"io"
	"os"
	"path/filepath"
)

// Dir is the directory regression artifacts are stored under, relative to
// the output root.
const Dir = "regressions"

// Store copies every artifact that exists into <root>/regressions/<dirName>/,
// creating the directory when absent. Re-running the same module name
// overwrites its own prior artifacts; directories belonging to other names
// are never touched. Missing artifacts are skipped silently: a trial only
// produces the files its tool was asked for. Returns the archived paths.
func Store(root, dirName string, artifacts []string) ([]string, error) {
	dest := filepath.Join(root, Dir, dirName)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, err
	}
	var stored []string
	for _, src := range artifacts {
		if _, err := os.Stat(src); err != nil {
			continue
		}
		out := filepath.Join(dest, filepath.Base(src))
		if err := copyFile(src, out); err != nil {
			return stored, err
		}
		stored = append(stored, out)
	}
	return stored, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
