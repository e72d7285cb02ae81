// Package preflight checks the host before provisioning: privilege level,
// required client tools and leftovers from earlier runs. It backs the
// doctor command and the privilege gate of the node bootstrapper.
package preflight

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/k8s"
	"github.com/kubeprep/kubeprep/internal/platform/system"
)

// Tool is a client tool a sequencer invokes.
type Tool struct {
	// Name is the binary name looked up in PATH.
	Name string

	// Required marks tools whose absence fails the check.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// NodeTools returns the tools the node bootstrapper invokes. kubeadm and
// kubectl are absent on a fresh host; the bootstrapper installs them itself.
func NodeTools() []Tool {
	return []Tool{
		{Name: "apt-get", Required: true, Description: "installs all packages"},
		{Name: "systemctl", Required: true, Description: "controls the containerd service"},
		{Name: "modprobe", Required: true, Description: "loads kernel modules"},
		{Name: "sysctl", Required: true, Description: "applies kernel parameters"},
		{Name: "swapoff", Required: true, Description: "disables swap"},
		{Name: "gpg", Required: false, Description: "dearmors the apt signing key (installed by the base-packages step)"},
	}
}

// ShellTools returns the tools the shell installer invokes.
func ShellTools() []Tool {
	return []Tool{
		{Name: "apt-get", Required: true, Description: "installs the zsh package"},
		{Name: "git", Required: true, Description: "clones zsh plugins"},
		{Name: "sudo", Required: true, Description: "runs installs as the target user"},
		{Name: "chsh", Required: true, Description: "switches the default shell"},
	}
}

// ToolResult is the outcome of a single tool lookup.
type ToolResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// Report is the aggregated preflight outcome.
type Report struct {
	Root               bool
	Tools              []ToolResult
	ClusterInitialized bool
	SwapActive         bool
}

// swapsPath lists active swap devices; the file has a header line only when
// swap is off.
const swapsPath = "/proc/swaps"

// Run checks privilege, tool availability, active swap and the cluster
// marker file.
func Run(fs afero.Fs, runner system.Runner, euid int, tools []Tool) *Report {
	report := &Report{Root: euid == 0}

	for _, tool := range tools {
		result := ToolResult{Tool: tool}
		if path, err := runner.LookPath(tool.Name); err == nil {
			result.Found = true
			result.Path = path
		}
		report.Tools = append(report.Tools, result)
	}

	initialized, err := afero.Exists(fs, k8s.AdminKubeconfigPath)
	report.ClusterInitialized = err == nil && initialized
	report.SwapActive = swapActive(fs)

	return report
}

func swapActive(fs afero.Fs) bool {
	data, err := afero.ReadFile(fs, swapsPath)
	if err != nil {
		return false
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	return len(lines) > 1
}

// Err aggregates every failed required check, or nil when the host is ready.
func (r *Report) Err() error {
	var result *multierror.Error

	if !r.Root {
		result = multierror.Append(result, fmt.Errorf("must run as root"))
	}
	for _, tool := range r.Tools {
		if tool.Tool.Required && !tool.Found {
			result = multierror.Append(result,
				fmt.Errorf("missing required tool %s (%s)", tool.Tool.Name, tool.Tool.Description))
		}
	}
	return result.ErrorOrNil()
}
