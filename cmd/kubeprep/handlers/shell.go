package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/config"
	"github.com/kubeprep/kubeprep/internal/k8s"
	"github.com/kubeprep/kubeprep/internal/platform/system"
	"github.com/kubeprep/kubeprep/internal/sequence"
	"github.com/kubeprep/kubeprep/internal/shellenv"
)

// ShellOptions configures the shell handler.
type ShellOptions struct {
	ConfigPath string
}

// Shell handles the shell command: it installs the zsh environment for the
// target user.
func Shell(ctx context.Context, opts ShellOptions) error {
	cfg, err := config.Load(afero.NewOsFs(), opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sctx := sequence.NewContext(ctx, cfg, system.NewExecRunner(), k8s.NewClient)
	return shellenv.Sequence().Run(sctx)
}
