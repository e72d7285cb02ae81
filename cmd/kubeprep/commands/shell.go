package commands

import (
	"github.com/spf13/cobra"

	"github.com/kubeprep/kubeprep/cmd/kubeprep/handlers"
)

// Shell returns the command that installs the zsh environment.
//
// Environment variables:
//
//	KUBEPREP_USER: user receiving the shell environment (default: invoking user)
//	ZSH_CUSTOM:    Oh My Zsh custom directory override
func Shell() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Install a zsh environment for the target user",
		Long: `Install and configure a zsh environment for the target user.

The command installs zsh, the Oh My Zsh framework and a set of plugins,
rewrites the plugins line in .zshrc and switches the user's default shell.
Every step is guarded: repeated runs neither re-download nor duplicate
configuration.

Examples:
  # Install for the invoking user
  sudo kubeprep shell

  # Install for another user
  sudo KUBEPREP_USER=alice kubeprep shell`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Shell(cmd.Context(), handlers.ShellOptions{ConfigPath: configPath})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: kubeprep.yaml)")

	return cmd
}
