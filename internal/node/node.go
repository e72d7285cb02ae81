// Package node bootstraps a single-node Kubernetes control plane on the
// local host.
//
// The bootstrapper is a fixed ordered sequence of idempotent steps: base
// packages, swap disable, kernel modules, sysctl, containerd, the
// Kubernetes apt repository, the kubeadm/kubelet/kubectl packages, kubeadm
// init, kubectl credentials for the target user, the Flannel CNI, taint
// removal, a kubectl alias and a final status report. Taint removal and the
// status report are best-effort; everything else aborts the sequence on
// failure.
package node

import (
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// FlannelManifestURL is the CNI manifest applied after kubeadm init. Its
// default network matches the default pod network CIDR.
const FlannelManifestURL = "https://github.com/flannel-io/flannel/releases/latest/download/kube-flannel.yml"

// Sequence returns the bootstrapper's step runner.
func Sequence() *sequence.Runner {
	r := sequence.NewRunner()
	r.Add(
		&BasePackagesStep{},
		&DisableSwapStep{},
		&KernelModulesStep{},
		&SysctlStep{},
		&ContainerdStep{},
		&AptRepoStep{},
		&KubePackagesStep{},
		&KubeadmInitStep{},
		&KubeconfigStep{},
		&CNIStep{},
	)
	r.AddBestEffort(&UntaintStep{})
	r.Add(&AliasStep{})
	r.AddBestEffort(&StatusStep{})
	return r
}

// aptEnv suppresses interactive prompts from package installs.
var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}
