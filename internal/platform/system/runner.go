// Package system executes external commands against the local host.
//
// All host mutation performed by provisioning steps goes through the Runner
// interface so that step logic can be exercised in tests with a recording
// fake instead of a real package manager or service control.
package system

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner abstracts external command execution.
type Runner interface {
	// Run executes a command, discarding stdout. Stderr is captured and
	// included in the returned error on failure.
	Run(ctx context.Context, name string, args ...string) error

	// RunEnv behaves like Run with extra environment entries appended to
	// the inherited process environment.
	RunEnv(ctx context.Context, env []string, name string, args ...string) error

	// Output executes a command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports the path of a binary, or an error if it is not
	// installed.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	// Stdout receives command stdout when set; otherwise stdout is
	// discarded. Useful for passing through apt progress output.
	Stdout io.Writer
}

// NewExecRunner returns a Runner that streams command stdout to the
// process stdout.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return r.RunEnv(ctx, nil, name, args...)
}

// RunEnv implements Runner.
func (r *ExecRunner) RunEnv(ctx context.Context, env []string, name string, args ...string) error {
	// #nosec G204 -- command names and arguments come from step definitions, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stderr bytes.Buffer
	cmd.Stdout = r.Stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 -- command names and arguments come from step definitions, not user input
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
