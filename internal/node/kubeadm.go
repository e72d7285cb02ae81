package node

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/k8s"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// KubeadmInitStep initializes the control plane. The step is idempotent:
// when the admin kubeconfig written by a previous init exists, the step
// warns and leaves the cluster alone instead of re-initializing it.
type KubeadmInitStep struct{}

// Name implements sequence.Step.
func (s *KubeadmInitStep) Name() string { return "kubeadm-init" }

// Run implements sequence.Step.
func (s *KubeadmInitStep) Run(ctx *sequence.Context) error {
	initialized, err := afero.Exists(ctx.Fs, k8s.AdminKubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", k8s.AdminKubeconfigPath, err)
	}
	if initialized {
		ctx.Observer.Warn("cluster already initialized (%s exists), skipping kubeadm init", k8s.AdminKubeconfigPath)
		return nil
	}

	if err := ctx.Runner.Run(ctx, "kubeadm", "init",
		"--pod-network-cidr="+ctx.Config.Kubernetes.PodNetworkCIDR); err != nil {
		return fmt.Errorf("kubeadm init failed: %w", err)
	}
	return nil
}

// CNIStep applies the Flannel manifest so pods get networking.
type CNIStep struct{}

// Name implements sequence.Step.
func (s *CNIStep) Name() string { return "cni" }

// Run implements sequence.Step.
func (s *CNIStep) Run(ctx *sequence.Context) error {
	if err := ctx.Runner.Run(ctx, "kubectl",
		"--kubeconfig", k8s.AdminKubeconfigPath,
		"apply", "-f", FlannelManifestURL); err != nil {
		return fmt.Errorf("failed to apply CNI manifest: %w", err)
	}
	return nil
}
