package system

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeRunner records executed commands and returns scripted results.
// It is safe for use from parallel tests.
type FakeRunner struct {
	mu sync.Mutex

	// Calls holds every executed command line, name and args joined by
	// spaces, in execution order.
	Calls []string

	// Failures maps a command-line prefix to the error returned when a
	// command matching it is executed.
	Failures map[string]error

	// Outputs maps a command-line prefix to the stdout returned by Output.
	Outputs map[string]string

	// MissingBinaries lists names for which LookPath reports an error.
	MissingBinaries []string
}

// NewFakeRunner returns an empty recording runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Failures: make(map[string]error),
		Outputs:  make(map[string]string),
	}
}

// FailOn makes any command whose line starts with prefix return err.
func (f *FakeRunner) FailOn(prefix string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Failures[prefix] = err
}

// OutputOn sets the stdout returned for commands starting with prefix.
func (f *FakeRunner) OutputOn(prefix, out string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Outputs[prefix] = out
}

// Run implements Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) error {
	return f.RunEnv(ctx, nil, name, args...)
}

// RunEnv implements Runner.
func (f *FakeRunner) RunEnv(_ context.Context, _ []string, name string, args ...string) error {
	line := commandLine(name, args)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, line)

	for prefix, err := range f.Failures {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}
	return nil
}

// Output implements Runner.
func (f *FakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	line := commandLine(name, args)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, line)

	for prefix, err := range f.Failures {
		if strings.HasPrefix(line, prefix) {
			return "", err
		}
	}
	for prefix, out := range f.Outputs {
		if strings.HasPrefix(line, prefix) {
			return out, nil
		}
	}
	return "", nil
}

// LookPath implements Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, missing := range f.MissingBinaries {
		if missing == name {
			return "", fmt.Errorf("%s: executable file not found in $PATH", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// CalledWithPrefix reports whether any recorded command starts with prefix.
func (f *FakeRunner) CalledWithPrefix(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
