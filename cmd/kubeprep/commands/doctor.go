package commands

import (
	"github.com/spf13/cobra"

	"github.com/kubeprep/kubeprep/cmd/kubeprep/handlers"
)

// Doctor returns the command that checks host readiness without mutating
// anything.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check host readiness for provisioning",
		Long: `Check whether this host is ready for kubeprep provisioning.

Reports privilege level, availability of the client tools the sequencers
invoke, the validated configuration and whether a cluster is already
initialized. Nothing is modified.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), handlers.DoctorOptions{ConfigPath: configPath})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: kubeprep.yaml)")

	return cmd
}
