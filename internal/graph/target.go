package graph

import (
	"crypto/sha1"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// TargetID derives the content-addressed build target name for a source
// path: the file's basename plus the first eight hex characters of the
// path's digest, under the build directory.
//
// The identity depends only on the path text, never on file contents or
// mtime: repeated calls for the same path are stable, so unchanged inputs
// are not needlessly rebuilt, and the digest disambiguates distinct paths
// sharing a basename. Detecting content changes is the external build
// executor's job. Two blueprints reusing one path for different generated
// content alias to the same target; paths are expected unique per project.
func TargetID(path string) string {
	sum := sha1.Sum([]byte(path))
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return "build/" + name + "." + hex.EncodeToString(sum[:])[:8]
}
