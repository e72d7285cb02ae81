// Package config holds the provisioning configuration.
//
// Configuration is constructed exactly once at startup from defaults, an
// optional kubeprep.yaml file and environment overrides, then passed to the
// provisioning steps. Steps never consult the environment themselves.
package config

import (
	"fmt"
	"net"
	"regexp"
)

// DefaultConfigFile is the auto-detected configuration file name.
const DefaultConfigFile = "kubeprep.yaml"

// Config is the top-level provisioning configuration.
type Config struct {
	// Kubernetes configures the node bootstrapper.
	Kubernetes Kubernetes `mapstructure:"kubernetes"`

	// User is the login name that receives kubectl credentials, the
	// kubectl alias and the zsh environment.
	User string `mapstructure:"user"`

	// Shell configures the shell environment installer.
	Shell Shell `mapstructure:"shell"`
}

// Kubernetes holds node-bootstrapper settings.
type Kubernetes struct {
	// Version is the Kubernetes minor version, e.g. "1.34". It selects
	// the pkgs.k8s.io package repository.
	Version string `mapstructure:"version"`

	// PodNetworkCIDR is passed to kubeadm init and must match the CNI
	// manifest's default network.
	PodNetworkCIDR string `mapstructure:"podNetworkCIDR"`
}

// Shell holds shell-installer settings.
type Shell struct {
	// CustomDir overrides the Oh My Zsh custom directory. When empty the
	// installer uses <home>/.oh-my-zsh/custom.
	CustomDir string `mapstructure:"customDir"`

	// Plugins is the plugin list written to the user's .zshrc. Plugins
	// not bundled with Oh My Zsh are cloned into the custom directory.
	Plugins []string `mapstructure:"plugins"`
}

// Defaults for values the environment or config file leave unset.
const (
	DefaultKubernetesVersion = "1.34"
	DefaultPodNetworkCIDR    = "10.244.0.0/16"
)

// DefaultPlugins returns the default zsh plugin set.
func DefaultPlugins() []string {
	return []string{
		"git",
		"zsh-autosuggestions",
		"zsh-syntax-highlighting",
		"zsh-completions",
		"zsh-history-substring-search",
	}
}

// RepoURL returns the apt repository URL for the configured minor version.
func (k Kubernetes) RepoURL() string {
	return fmt.Sprintf("https://pkgs.k8s.io/core:/stable:/v%s/deb/", k.Version)
}

// ReleaseKeyURL returns the URL of the repository signing key.
func (k Kubernetes) ReleaseKeyURL() string {
	return k.RepoURL() + "Release.key"
}

var versionPattern = regexp.MustCompile(`^\d+\.\d+$`)

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	if !versionPattern.MatchString(c.Kubernetes.Version) {
		return fmt.Errorf("kubernetes version %q is not a <major>.<minor> version", c.Kubernetes.Version)
	}
	if _, _, err := net.ParseCIDR(c.Kubernetes.PodNetworkCIDR); err != nil {
		return fmt.Errorf("pod network CIDR %q is invalid: %w", c.Kubernetes.PodNetworkCIDR, err)
	}
	if c.User == "" {
		return fmt.Errorf("target user is empty: set user in %s or KUBEPREP_USER", DefaultConfigFile)
	}
	if len(c.Shell.Plugins) == 0 {
		return fmt.Errorf("shell plugin list is empty")
	}
	return nil
}
