// Package proc spawns external commands and reports a normalized status.
//
// Every process the program starts goes through this package: the external
// build executor, the vendor simulators and the package manager queries. The
// working directory and environment are always inherited from the caller.
// Calls block until the child exits; external EDA tools offer no portable
// cancellation signal, so none is attempted here.
package proc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"

	"github.com/vk/chipflow/internal/ctxlog"
	"github.com/vk/chipflow/internal/faults"
)

// ansiEscape matches terminal escape sequences. Persisted logs must never
// contain them.
var ansiEscape = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// StripANSI removes terminal escape sequences from text.
func StripANSI(text string) string {
	return ansiEscape.ReplaceAllString(text, "")
}

// Command is one invocation of an external binary with a fixed argument
// list.
type Command struct {
	name string
	args []string
}

// NewCommand creates a command for the named binary.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args}
}

// Arg appends a single argument, skipping empty strings.
func (c *Command) Arg(arg string) *Command {
	if arg != "" {
		c.args = append(c.args, arg)
	}
	return c
}

// Args appends every given argument.
func (c *Command) Args(args ...string) *Command {
	c.args = append(c.args, args...)
	return c
}

// String returns the command line in a loggable form.
func (c *Command) String() string {
	line := c.name
	for _, a := range c.args {
		line += " " + fmt.Sprintf("%q", a)
	}
	return line
}

// Spawn runs the command to completion, inheriting the caller's standard
// streams. A missing executable is logged and mapped to Fail, as is any
// non-zero exit code.
func (c *Command) Spawn(ctx context.Context) Status {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		c.diagnose(ctx, err)
		return Fail
	}
	return Ok
}

// CaptureToFile redirects both output streams to the file at path, then
// rewrites the recorded text with ANSI escape sequences removed.
func (c *Command) CaptureToFile(ctx context.Context, path string) Status {
	logger := ctxlog.FromContext(ctx)
	fd, err := os.Create(path)
	if err != nil {
		logger.Error("cannot create capture file", "path", path, "error", err)
		return Fail
	}
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdout = fd
	cmd.Stderr = fd
	runErr := cmd.Run()
	fd.Close()

	if data, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path, []byte(StripANSI(string(data))), 0o644); err != nil {
			logger.Error("cannot rewrite capture file", "path", path, "error", err)
		}
	}
	if runErr != nil {
		c.diagnose(ctx, runErr)
		return Fail
	}
	return Ok
}

// StreamAndCapture echoes the command's combined output to the caller's
// stdout line by line while appending the escape-stripped text to the file
// at path. The first line is visible before the child exits; the call still
// blocks until completion.
func (c *Command) StreamAndCapture(ctx context.Context, path string) Status {
	logger := ctxlog.FromContext(ctx)
	fd, err := os.Create(path)
	if err != nil {
		logger.Error("cannot create capture file", "path", path, "error", err)
		return Fail
	}
	defer fd.Close()

	cmd := exec.Command(c.name, c.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		logger.Error("cannot open output pipe", "error", err)
		return Fail
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		c.diagnose(ctx, err)
		return Fail
	}
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Println(line)
		fmt.Fprintln(fd, StripANSI(line))
	}
	if err := cmd.Wait(); err != nil {
		return Fail
	}
	return Ok
}

// CaptureToString returns the command's combined output as text plus its
// status. A non-zero exit yields the captured text with a Fail status; a
// missing executable yields empty text, a Fail status and a logged
// diagnostic.
func (c *Command) CaptureToString(ctx context.Context) (string, Status) {
	cmd := exec.Command(c.name, c.args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			c.diagnose(ctx, err)
			return "", Fail
		}
		return string(out), Fail
	}
	return string(out), Ok
}

// diagnose logs a run error, flagging a missing binary distinctly so the
// caller's failure record points at the real cause.
func (c *Command) diagnose(ctx context.Context, err error) {
	logger := ctxlog.FromContext(ctx)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	nf := &faults.ToolNotFound{Name: c.name}
	logger.Error(nf.Error())
}
