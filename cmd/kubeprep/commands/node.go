package commands

import (
	"github.com/spf13/cobra"

	"github.com/kubeprep/kubeprep/cmd/kubeprep/handlers"
)

// Node returns the command that bootstraps the single-node control plane.
//
// The bootstrap sequence:
//  1. Installs base packages and disables swap
//  2. Configures kernel modules, sysctl parameters and containerd
//  3. Sets up the pkgs.k8s.io apt repository for the selected version
//  4. Runs kubeadm init and applies the Flannel CNI
//  5. Installs kubectl credentials and an alias for the target user
//
// Re-running on an initialized host skips kubeadm init and leaves the
// cluster untouched.
//
// Environment variables:
//
//	K8S_VERSION:      Kubernetes minor version (default 1.34)
//	POD_NETWORK_CIDR: pod network passed to kubeadm init (default 10.244.0.0/16)
//	KUBEPREP_USER:    user receiving credentials (default: invoking user)
func Node() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "node",
		Short: "Bootstrap a single-node Kubernetes control plane",
		Long: `Bootstrap a single-node Kubernetes control plane on this host.

The command runs a fixed sequence of idempotent steps: package installation,
swap disable, kernel and sysctl tuning, containerd setup, kubeadm init, CNI
installation and kubectl configuration for the target user. It must run as
root; a failure in any step aborts the remaining sequence.

Examples:
  # Bootstrap with defaults
  sudo kubeprep node

  # Bootstrap a specific Kubernetes minor version
  sudo K8S_VERSION=1.31 kubeprep node

  # Use a configuration file
  sudo kubeprep node -c cluster.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Node(cmd.Context(), handlers.NodeOptions{ConfigPath: configPath})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: kubeprep.yaml)")

	return cmd
}
