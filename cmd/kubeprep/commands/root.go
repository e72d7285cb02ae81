// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the kubeprep CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kubeprep",
		Short: "Prepare a host as a single-node Kubernetes control plane",
	}

	cmd.AddCommand(Node())
	cmd.AddCommand(Shell())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
