package node

import (
	"fmt"

	"github.com/kubeprep/kubeprep/internal/sequence"
)

// BasePackagesStep installs the packages needed by the later steps:
// HTTPS transport for apt, CA certificates, curl and gpg.
type BasePackagesStep struct{}

// Name implements sequence.Step.
func (s *BasePackagesStep) Name() string { return "base-packages" }

// Run implements sequence.Step.
func (s *BasePackagesStep) Run(ctx *sequence.Context) error {
	if err := ctx.Runner.RunEnv(ctx, aptEnv, "apt-get", "update"); err != nil {
		return fmt.Errorf("apt update failed: %w", err)
	}
	if err := ctx.Runner.RunEnv(ctx, aptEnv, "apt-get", "install", "-y",
		"apt-transport-https", "ca-certificates", "curl", "gpg"); err != nil {
		return fmt.Errorf("base package install failed: %w", err)
	}
	return nil
}

// KubePackagesStep installs kubelet, kubeadm and kubectl and pins them so
// regular apt upgrades do not move the cluster to a different minor version.
type KubePackagesStep struct{}

// Name implements sequence.Step.
func (s *KubePackagesStep) Name() string { return "kubernetes-packages" }

// Run implements sequence.Step.
func (s *KubePackagesStep) Run(ctx *sequence.Context) error {
	if err := ctx.Runner.RunEnv(ctx, aptEnv, "apt-get", "install", "-y",
		"kubelet", "kubeadm", "kubectl"); err != nil {
		return fmt.Errorf("kubernetes package install failed: %w", err)
	}
	if err := ctx.Runner.Run(ctx, "apt-mark", "hold", "kubelet", "kubeadm", "kubectl"); err != nil {
		return fmt.Errorf("apt-mark hold failed: %w", err)
	}
	return nil
}
