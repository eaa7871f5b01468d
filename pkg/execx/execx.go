// Package execx runs external commands on behalf of the bootstrap
// sequencer. Every invocation is attempted once; retry policy belongs to
// the caller (and the sequencer has none).
package execx

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/odoo-devkit/odev/pkg/logging"
)

// Result carries the exit code and raw error of a finished command
type Result struct {
	Code int
	Err  error
}

// Ok reports whether the command exited zero
func (r Result) Ok() bool {
	return r.Code == 0 && r.Err == nil
}

// Run executes a command with stdio attached to the current process,
// streaming output to the user
func Run(ctx context.Context, name string, args ...string) Result {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return resultOf(ctx, cmd.Run())
}

// Quiet executes a command discarding all output. Used for probes where
// only the exit code matters.
func Quiet(ctx context.Context, name string, args ...string) Result {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return resultOf(ctx, cmd.Run())
}

// Capture executes a command and returns its stdout. Stderr is captured
// too and folded into the error path via the exec.ExitError.
func Capture(ctx context.Context, name string, args ...string) (string, Result) {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	return string(out), resultOf(ctx, err)
}

// LookPath reports whether a binary is resolvable on PATH
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func resultOf(ctx context.Context, err error) Result {
	if err == nil {
		return Result{}
	}
	code := 1
	if ctx.Err() == context.DeadlineExceeded {
		code = 124
	} else if ee, ok := err.(*exec.ExitError); ok {
		code = ee.ExitCode()
	}
	return Result{Code: code, Err: err}
}
