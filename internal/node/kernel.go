package node

import (
	"fmt"
	"strings"

	"github.com/kubeprep/kubeprep/internal/fileedit"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// Paths and contents of the kernel configuration dropped by the
// bootstrapper.
const (
	ModulesConfPath = "/etc/modules-load.d/k8s.conf"
	SysctlConfPath  = "/etc/sysctl.d/k8s.conf"
)

// kernelModules are loaded now and on every boot. overlay backs the
// containerd snapshotter, br_netfilter exposes bridged traffic to iptables.
var kernelModules = []string{"overlay", "br_netfilter"}

// sysctlParams make bridged pod traffic visible to iptables and enable
// packet forwarding.
var sysctlParams = []string{
	"net.bridge.bridge-nf-call-iptables  = 1",
	"net.bridge.bridge-nf-call-ip6tables = 1",
	"net.ipv4.ip_forward                 = 1",
}

// KernelModulesStep persists and loads the kernel modules Kubernetes needs.
type KernelModulesStep struct{}

// Name implements sequence.Step.
func (s *KernelModulesStep) Name() string { return "kernel-modules" }

// Run implements sequence.Step.
func (s *KernelModulesStep) Run(ctx *sequence.Context) error {
	content := strings.Join(kernelModules, "\n") + "\n"
	if err := fileedit.WriteFile(ctx.Fs, ModulesConfPath, []byte(content), 0o644); err != nil {
		return err
	}
	for _, module := range kernelModules {
		if err := ctx.Runner.Run(ctx, "modprobe", module); err != nil {
			return fmt.Errorf("failed to load module %s: %w", module, err)
		}
	}
	return nil
}

// SysctlStep persists and applies the sysctl parameters Kubernetes needs.
type SysctlStep struct{}

// Name implements sequence.Step.
func (s *SysctlStep) Name() string { return "sysctl" }

// Run implements sequence.Step.
func (s *SysctlStep) Run(ctx *sequence.Context) error {
	content := strings.Join(sysctlParams, "\n") + "\n"
	if err := fileedit.WriteFile(ctx.Fs, SysctlConfPath, []byte(content), 0o644); err != nil {
		return err
	}
	if err := ctx.Runner.Run(ctx, "sysctl", "--system"); err != nil {
		return fmt.Errorf("failed to apply sysctl parameters: %w", err)
	}
	return nil
}
