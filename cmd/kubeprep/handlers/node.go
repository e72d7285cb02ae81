// Package handlers implements the command execution logic behind the CLI.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/config"
	"github.com/kubeprep/kubeprep/internal/k8s"
	"github.com/kubeprep/kubeprep/internal/node"
	"github.com/kubeprep/kubeprep/internal/platform/system"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// ErrNotRoot is returned before any mutating step when the process lacks
// root privileges.
var ErrNotRoot = errors.New("kubeprep node must run as root (try sudo)")

// geteuid is replaced in tests.
var geteuid = os.Geteuid

// NodeOptions configures the node handler.
type NodeOptions struct {
	ConfigPath string
}

// Node handles the node command: it bootstraps the single-node control
// plane. The privilege check runs before configuration loading so a
// non-root invocation exits without touching the host.
func Node(ctx context.Context, opts NodeOptions) error {
	if geteuid() != 0 {
		return ErrNotRoot
	}

	cfg, err := config.Load(afero.NewOsFs(), opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sctx := sequence.NewContext(ctx, cfg, system.NewExecRunner(), k8s.NewClient)
	return node.Sequence().Run(sctx)
}
