// Package runner invokes the device utilities behind UNBIND and INFO
// and reduces their output to a single protocol-safe line.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"wfbbind/util"
)

const waitDelay = 2 * time.Second

// Result is the outcome of one invocation.
type Result struct {
	Output   string // combined stdout/stderr on one line
	ExitCode int
	Err      error // non-nil only if the program could not be run
}

// Success reports whether the program ran and exited with status 0.
func (r Result) Success() bool { return r.Err == nil && r.ExitCode == 0 }

// Runner executes external programs.
type Runner interface {
	Run(ctx context.Context, argv []string) Result
}

// Exec runs programs with os/exec.
type Exec struct {
	// Timeout bounds each invocation.  Zero means no bound: a program
	// that never exits stalls the caller.
	Timeout time.Duration
	Logger  *util.Logger
}

// Run starts argv[0] with the remaining arguments and waits for it.
func (e *Exec) Run(ctx context.Context, argv []string) Result {
	if len(argv) == 0 {
		return Result{ExitCode: -1, Err: errors.New("no command specified")}
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	// Grandchildren holding the output pipe must not keep Run blocked
	// once the context has been cancelled.
	cmd.WaitDelay = waitDelay

	if e.Logger != nil {
		e.Logger.Debug("exec: %s", cmd.String())
	}

	err := cmd.Run()
	res := Result{Output: SingleLine(out.String())}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		res.Err = fmt.Errorf("exec %q: %w", argv[0], err)
	}
	return res
}

// SingleLine collapses every run of CR/LF characters into one space and
// trims surrounding whitespace.
func SingleLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' || c == '\r' {
			pending = true
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}

// Split breaks a configured command string into argv.  Arguments are
// separated by whitespace; no shell quoting is interpreted.
func Split(command string) []string {
	return strings.Fields(command)
}
