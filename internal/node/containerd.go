package node

import (
	"fmt"

	"github.com/kubeprep/kubeprep/internal/containerd"
	"github.com/kubeprep/kubeprep/internal/fileedit"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// ContainerdStep installs containerd, rewrites its configuration for the
// systemd cgroup driver and the pinned sandbox image, and restarts the
// service so the changes take effect before kubeadm runs.
type ContainerdStep struct{}

// Name implements sequence.Step.
func (s *ContainerdStep) Name() string { return "containerd" }

// Run implements sequence.Step.
func (s *ContainerdStep) Run(ctx *sequence.Context) error {
	if err := ctx.Runner.RunEnv(ctx, aptEnv, "apt-get", "install", "-y", "containerd"); err != nil {
		return fmt.Errorf("containerd install failed: %w", err)
	}

	stock, err := ctx.Runner.Output(ctx, "containerd", "config", "default")
	if err != nil {
		return fmt.Errorf("failed to generate containerd config: %w", err)
	}

	patched, err := containerd.Patch([]byte(stock))
	if err != nil {
		return err
	}
	if err := fileedit.WriteFile(ctx.Fs, containerd.ConfigPath, patched, 0o644); err != nil {
		return err
	}

	if err := ctx.Runner.Run(ctx, "systemctl", "restart", "containerd"); err != nil {
		return fmt.Errorf("containerd restart failed: %w", err)
	}
	if err := ctx.Runner.Run(ctx, "systemctl", "enable", "containerd"); err != nil {
		return fmt.Errorf("containerd enable failed: %w", err)
	}
	return nil
}
