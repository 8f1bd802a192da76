package blueprint

import "strings"

// Builtin fileset tags, one per compilable source dialect. Entries carrying
// any other tag are auxiliary (constraint files, waveform configs, board
// files) and are never fed to the compiler.
const (
	FilesetVHDL          = "VHDL"
	FilesetVerilog       = "VLOG"
	FilesetSystemVerilog = "SYSV"
)

// NormalizeFileset maps a raw fileset tag to its canonical form: uppercased,
// with spaces and underscores collapsed to hyphens. This is the sole
// identity rule for filesets and is applied everywhere tags are compared.
func NormalizeFileset(fset string) string {
	fset = strings.ToUpper(fset)
	fset = strings.ReplaceAll(fset, " ", "-")
	return strings.ReplaceAll(fset, "_", "-")
}

// Entry is a single source item within a blueprint. Immutable once
// constructed; owned by the Blueprint that parsed it.
type Entry struct {
	fileset string
	library string
	path    string
	deps    []string
}

// NewEntry constructs an entry, normalizing its fileset tag.
func NewEntry(fileset, library, path string, deps []string) Entry {
	return Entry{
		fileset: NormalizeFileset(fileset),
		library: library,
		path:    path,
		deps:    deps,
	}
}

// Fileset returns the normalized fileset tag.
func (e Entry) Fileset() string { return e.fileset }

// Library returns the HDL library the entry belongs to.
func (e Entry) Library() string { return e.library }

// Path returns the source file path.
func (e Entry) Path() string { return e.path }

// Deps returns the ordered list of file dependency paths.
func (e Entry) Deps() []string { return e.deps }

// Is reports whether the entry belongs to the given fileset, normalizing the
// queried tag first.
func (e Entry) Is(fset string) bool {
	return e.fileset == NormalizeFileset(fset)
}

// IsVHDL reports whether the entry is VHDL source.
func (e Entry) IsVHDL() bool { return e.fileset == FilesetVHDL }

// IsVerilog reports whether the entry is Verilog source.
func (e Entry) IsVerilog() bool { return e.fileset == FilesetVerilog }

// IsSystemVerilog reports whether the entry is SystemVerilog source.
func (e Entry) IsSystemVerilog() bool { return e.fileset == FilesetSystemVerilog }

// IsBuiltin reports whether the entry belongs to a compilable fileset.
func (e Entry) IsBuiltin() bool {
	switch e.fileset {
	case FilesetVHDL, FilesetVerilog, FilesetSystemVerilog:
		return true
	}
	return false
}
