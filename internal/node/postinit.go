package node

import (
	"fmt"
	"path/filepath"

	"github.com/kubeprep/kubeprep/internal/fileedit"
	"github.com/kubeprep/kubeprep/internal/k8s"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// KubectlAlias is the line appended to the target user's .bashrc.
const KubectlAlias = "alias k=kubectl"

// UntaintStep removes the control-plane taint so the single node schedules
// regular workloads. Registered best-effort: a cluster that keeps its taint
// is degraded, not broken.
type UntaintStep struct{}

// Name implements sequence.Step.
func (s *UntaintStep) Name() string { return "untaint-control-plane" }

// Run implements sequence.Step.
func (s *UntaintStep) Run(ctx *sequence.Context) error {
	client, err := ctx.NewKubeClient(k8s.AdminKubeconfigPath)
	if err != nil {
		return err
	}
	updated, err := k8s.RemoveControlPlaneTaint(ctx, client)
	if err != nil {
		return err
	}
	if updated == 0 {
		ctx.Observer.Info("no control-plane taints found")
	} else {
		ctx.Observer.Info("removed control-plane taint from %d node(s)", updated)
	}
	return nil
}

// AliasStep appends the kubectl alias to the target user's .bashrc unless
// the exact line is already there.
type AliasStep struct{}

// Name implements sequence.Step.
func (s *AliasStep) Name() string { return "kubectl-alias" }

// Run implements sequence.Step.
func (s *AliasStep) Run(ctx *sequence.Context) error {
	target, err := ctx.TargetUser()
	if err != nil {
		return err
	}

	bashrc := filepath.Join(target.Home, ".bashrc")
	added, err := fileedit.EnsureLine(ctx.Fs, bashrc, KubectlAlias)
	if err != nil {
		return err
	}
	if !added {
		ctx.Observer.Info("alias already present in %s", bashrc)
		return nil
	}
	if err := ctx.Fs.Chown(bashrc, target.UID, target.GID); err != nil {
		return fmt.Errorf("failed to chown %s: %w", bashrc, err)
	}
	return nil
}

// StatusStep reports nodes and kube-system pods. Registered best-effort: a
// slow API server must not fail an otherwise completed bootstrap.
type StatusStep struct{}

// Name implements sequence.Step.
func (s *StatusStep) Name() string { return "cluster-status" }

// Run implements sequence.Step.
func (s *StatusStep) Run(ctx *sequence.Context) error {
	client, err := ctx.NewKubeClient(k8s.AdminKubeconfigPath)
	if err != nil {
		return err
	}
	status, err := k8s.CollectStatus(ctx, client)
	if err != nil {
		return err
	}
	for _, line := range status.Lines() {
		ctx.Observer.Info("%s", line)
	}
	return nil
}
