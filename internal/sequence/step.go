// Package sequence runs an ordered list of provisioning steps against the
// local host.
//
// A sequence is fail-fast: the first error from a regular step aborts the
// remaining steps. Steps registered as best-effort log a warning on failure
// and let the sequence continue. There are no retries and no rollback; a
// failure mid-sequence leaves the host in the state the completed steps
// produced.
package sequence

import (
	"context"
	"net/http"
	"os/user"

	"github.com/spf13/afero"
	"k8s.io/client-go/kubernetes"

	"github.com/kubeprep/kubeprep/internal/config"
	"github.com/kubeprep/kubeprep/internal/platform/system"
)

// Step is a single provisioning action.
type Step interface {
	// Name returns the human-readable name of this step.
	Name() string

	// Run executes the step.
	Run(ctx *Context) error
}

// Context wraps the dependencies shared by all steps of a sequence.
type Context struct {
	context.Context

	Config   *config.Config
	Fs       afero.Fs
	Runner   system.Runner
	Observer Observer

	// HTTPClient fetches remote artifacts (repository signing keys,
	// install scripts).
	HTTPClient *http.Client

	// LookupUser resolves the target user. Defaults to os/user.Lookup.
	LookupUser func(name string) (*user.User, error)

	// NewKubeClient builds a Kubernetes client from a kubeconfig path.
	// Used by the post-init steps; replaced with a fake in tests.
	NewKubeClient func(kubeconfigPath string) (kubernetes.Interface, error)
}

// NewContext creates a sequence context wired for the real host.
func NewContext(ctx context.Context, cfg *config.Config, runner system.Runner, newKubeClient func(string) (kubernetes.Interface, error)) *Context {
	return &Context{
		Context:       ctx,
		Config:        cfg,
		Fs:            afero.NewOsFs(),
		Runner:        runner,
		Observer:      NewConsoleObserver(),
		HTTPClient:    http.DefaultClient,
		LookupUser:    user.Lookup,
		NewKubeClient: newKubeClient,
	}
}
