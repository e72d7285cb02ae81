package node

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/fileedit"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// Locations of the Kubernetes apt repository configuration.
const (
	KeyringPath  = "/etc/apt/keyrings/kubernetes-apt-keyring.gpg"
	RepoListPath = "/etc/apt/sources.list.d/kubernetes.list"

	armoredKeyPath = "/etc/apt/keyrings/kubernetes-apt-keyring.asc"
)

// AptRepoStep configures the pkgs.k8s.io apt repository for the configured
// minor version: signing key, source list entry, apt index refresh.
type AptRepoStep struct{}

// Name implements sequence.Step.
func (s *AptRepoStep) Name() string { return "kubernetes-apt-repo" }

// Run implements sequence.Step.
func (s *AptRepoStep) Run(ctx *sequence.Context) error {
	if err := s.installKeyring(ctx); err != nil {
		return err
	}

	entry := fmt.Sprintf("deb [signed-by=%s] %s /\n", KeyringPath, ctx.Config.Kubernetes.RepoURL())
	if err := fileedit.WriteFile(ctx.Fs, RepoListPath, []byte(entry), 0o644); err != nil {
		return err
	}

	if err := ctx.Runner.RunEnv(ctx, aptEnv, "apt-get", "update"); err != nil {
		return fmt.Errorf("apt update failed: %w", err)
	}
	return nil
}

// installKeyring fetches and dearmors the repository signing key. A keyring
// left by a previous run is reused.
func (s *AptRepoStep) installKeyring(ctx *sequence.Context) error {
	exists, err := afero.Exists(ctx.Fs, KeyringPath)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", KeyringPath, err)
	}
	if exists {
		ctx.Observer.Warn("keyring %s already present, keeping it", KeyringPath)
		return nil
	}

	key, err := ctx.Fetch(ctx.Config.Kubernetes.ReleaseKeyURL())
	if err != nil {
		return err
	}
	if err := fileedit.WriteFile(ctx.Fs, armoredKeyPath, key, 0o644); err != nil {
		return err
	}

	if err := ctx.Runner.Run(ctx, "gpg", "--dearmor", "--yes", "-o", KeyringPath, armoredKeyPath); err != nil {
		return fmt.Errorf("failed to dearmor signing key: %w", err)
	}
	_ = ctx.Fs.Remove(armoredKeyPath)
	return nil
}
