// Package main is the entry point for the kubeprep CLI.
//
// kubeprep prepares an Ubuntu host for Kubernetes development: the node
// command bootstraps a single-node control plane with kubeadm, the shell
// command installs a zsh environment for the target user.
//
// For detailed usage information, run:
//
//	kubeprep --help
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kubeprep/kubeprep/cmd/kubeprep/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode mirrors the exit status of the first failing external command
// when one is wrapped in err, and is 1 otherwise.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
