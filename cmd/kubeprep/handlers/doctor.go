package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/config"
	"github.com/kubeprep/kubeprep/internal/platform/system"
	"github.com/kubeprep/kubeprep/internal/preflight"
)

// DoctorOptions configures the doctor handler.
type DoctorOptions struct {
	ConfigPath string
}

// Doctor handles the doctor command: it reports host readiness without
// mutating anything. The returned error aggregates every failed required
// check.
func Doctor(_ context.Context, opts DoctorOptions) error {
	fs := afero.NewOsFs()

	cfg, err := config.Load(fs, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return doctorReport(os.Stdout, fs, system.NewExecRunner(), geteuid(), cfg)
}

// doctorReport renders the preflight reports for both sequencers.
func doctorReport(out io.Writer, fs afero.Fs, runner system.Runner, euid int, cfg *config.Config) error {
	nodeReport := preflight.Run(fs, runner, euid, preflight.NodeTools())
	shellReport := preflight.Run(fs, runner, euid, preflight.ShellTools())

	fmt.Fprintf(out, "kubeprep doctor\n\n")
	fmt.Fprintf(out, "  Configuration\n")
	fmt.Fprintf(out, "    Kubernetes:  %s\n", cfg.Kubernetes.Version)
	fmt.Fprintf(out, "    Pod network: %s\n", cfg.Kubernetes.PodNetworkCIDR)
	fmt.Fprintf(out, "    User:        %s\n\n", cfg.User)

	printRow(out, "root privileges", nodeReport.Root, "")
	printRow(out, "swap disabled", !nodeReport.SwapActive, "")
	if nodeReport.ClusterInitialized {
		printRow(out, "cluster initialized", true, "node bootstrap would skip kubeadm init")
	}

	fmt.Fprintf(out, "\n  Node bootstrap tools\n")
	printTools(out, nodeReport)
	fmt.Fprintf(out, "\n  Shell install tools\n")
	printTools(out, shellReport)

	if err := nodeReport.Err(); err != nil {
		return err
	}
	return shellReport.Err()
}

func printTools(out io.Writer, report *preflight.Report) {
	for _, tool := range report.Tools {
		extra := tool.Path
		if !tool.Found && !tool.Tool.Required {
			extra = "optional: " + tool.Tool.Description
		}
		printRow(out, tool.Tool.Name, tool.Found, extra)
	}
}

func printRow(out io.Writer, name string, ok bool, extra string) {
	indicator := "[OK]"
	if !ok {
		indicator = "[!!]"
	}
	if extra != "" {
		fmt.Fprintf(out, "  %s  %-20s %s\n", indicator, name, extra)
	} else {
		fmt.Fprintf(out, "  %s  %s\n", indicator, name)
	}
}
