package node

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/fileedit"
	"github.com/kubeprep/kubeprep/internal/k8s"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// KubeconfigStep installs the admin kubeconfig into the target user's
// ~/.kube/config and hands ownership over so kubectl works without sudo.
type KubeconfigStep struct{}

// Name implements sequence.Step.
func (s *KubeconfigStep) Name() string { return "kubectl-credentials" }

// Run implements sequence.Step.
func (s *KubeconfigStep) Run(ctx *sequence.Context) error {
	target, err := ctx.TargetUser()
	if err != nil {
		return err
	}

	adminConf, err := afero.ReadFile(ctx.Fs, k8s.AdminKubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", k8s.AdminKubeconfigPath, err)
	}

	kubeDir := filepath.Join(target.Home, ".kube")
	kubeconfig := filepath.Join(kubeDir, "config")

	if err := ctx.Fs.MkdirAll(kubeDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", kubeDir, err)
	}
	if err := fileedit.WriteFile(ctx.Fs, kubeconfig, adminConf, 0o600); err != nil {
		return err
	}

	for _, path := range []string{kubeDir, kubeconfig} {
		if err := ctx.Fs.Chown(path, target.UID, target.GID); err != nil {
			return fmt.Errorf("failed to chown %s: %w", path, err)
		}
	}
	return nil
}
