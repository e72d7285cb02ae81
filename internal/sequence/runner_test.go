package sequence

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepFunc adapts a function to the Step interface for tests.
type stepFunc struct {
	name string
	fn   func(*Context) error
}

func (s *stepFunc) Name() string           { return s.name }
func (s *stepFunc) Run(ctx *Context) error { return s.fn(ctx) }

func step(name string, fn func(*Context) error) Step {
	return &stepFunc{name: name, fn: fn}
}

func testContext(buf *bytes.Buffer) *Context {
	return &Context{
		Context:  context.Background(),
		Observer: NewWriterObserver(buf),
	}
}

func TestRunner_RunsInOrder(t *testing.T) {
	t.Parallel()
	var executed []string

	r := NewRunner().Add(
		step("packages", func(_ *Context) error { executed = append(executed, "packages"); return nil }),
		step("swap", func(_ *Context) error { executed = append(executed, "swap"); return nil }),
		step("kernel", func(_ *Context) error { executed = append(executed, "kernel"); return nil }),
	)

	err := r.Run(testContext(&bytes.Buffer{}))

	require.NoError(t, err)
	assert.Equal(t, []string{"packages", "swap", "kernel"}, executed)
}

func TestRunner_StopsOnError(t *testing.T) {
	t.Parallel()
	var executed []string

	r := NewRunner().Add(
		step("packages", func(_ *Context) error { executed = append(executed, "packages"); return nil }),
		step("swap", func(_ *Context) error { return fmt.Errorf("device busy") }),
		step("kernel", func(_ *Context) error { executed = append(executed, "kernel"); return nil }),
	)

	err := r.Run(testContext(&bytes.Buffer{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "swap step failed")
	assert.Contains(t, err.Error(), "device busy")
	assert.Equal(t, []string{"packages"}, executed)
}

func TestRunner_BestEffortContinues(t *testing.T) {
	t.Parallel()
	var executed []string
	buf := &bytes.Buffer{}

	r := NewRunner()
	r.Add(step("init", func(_ *Context) error { executed = append(executed, "init"); return nil }))
	r.AddBestEffort(step("untaint", func(_ *Context) error { return fmt.Errorf("connection refused") }))
	r.Add(step("alias", func(_ *Context) error { executed = append(executed, "alias"); return nil }))

	err := r.Run(testContext(buf))

	require.NoError(t, err)
	assert.Equal(t, []string{"init", "alias"}, executed)
	assert.Contains(t, buf.String(), "[??]")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestRunner_Empty(t *testing.T) {
	t.Parallel()
	err := NewRunner().Run(testContext(&bytes.Buffer{}))
	require.NoError(t, err)
}

func TestRunner_LogsStepLifecycle(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}

	r := NewRunner().Add(step("containerd", func(_ *Context) error { return nil }))
	require.NoError(t, r.Run(testContext(buf)))

	out := buf.String()
	assert.Contains(t, out, "[containerd (1/1)] starting")
	assert.Contains(t, out, "[containerd (1/1)] completed")
}

func TestRunner_LogsFailure(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}

	r := NewRunner().Add(step("cni", func(_ *Context) error { return fmt.Errorf("boom") }))
	_ = r.Run(testContext(buf))

	assert.Contains(t, buf.String(), "[!!]")
	assert.Contains(t, buf.String(), "boom")
}
