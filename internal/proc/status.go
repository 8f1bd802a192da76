package proc

// Status is the normalized two-valued result of an external command.
type Status int

const (
	// Ok indicates the command ran to completion and exited zero.
	Ok Status = iota
	// Fail indicates a non-zero exit or a missing executable.
	Fail
)

// FromExitCode maps a child process exit code onto a Status.
func FromExitCode(code int) Status {
	if code == 0 {
		return Ok
	}
	return Fail
}

// IsOk reports whether the command succeeded.
func (s Status) IsOk() bool { return s == Ok }

// IsErr reports whether the command failed.
func (s Status) IsErr() bool { return s == Fail }

func (s Status) String() string {
	if s == Ok {
		return "ok"
	}
	return "fail"
}
