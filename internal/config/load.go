package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/vrischmann/envconfig"
	"gopkg.in/yaml.v3"
)

// envOverrides are the environment variables recognized by kubeprep. They
// take precedence over the configuration file.
type envOverrides struct {
	K8sVersion     string `envconfig:"K8S_VERSION,optional"`
	PodNetworkCIDR string `envconfig:"POD_NETWORK_CIDR,optional"`
	User           string `envconfig:"KUBEPREP_USER,optional"`
	ZshCustom      string `envconfig:"ZSH_CUSTOM,optional"`
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order.
//
// When path is empty, kubeprep.yaml in the working directory is used if it
// exists; a missing file is not an error and yields the defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
		if err := mapstructure.Decode(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var env envOverrides
	if err := envconfig.Init(&env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	applyOverrides(cfg, env)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, env envOverrides) {
	if env.K8sVersion != "" {
		cfg.Kubernetes.Version = env.K8sVersion
	}
	if env.PodNetworkCIDR != "" {
		cfg.Kubernetes.PodNetworkCIDR = env.PodNetworkCIDR
	}
	if env.User != "" {
		cfg.User = env.User
	}
	if env.ZshCustom != "" {
		cfg.Shell.CustomDir = env.ZshCustom
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Kubernetes.Version == "" {
		cfg.Kubernetes.Version = DefaultKubernetesVersion
	}
	if cfg.Kubernetes.PodNetworkCIDR == "" {
		cfg.Kubernetes.PodNetworkCIDR = DefaultPodNetworkCIDR
	}
	if cfg.User == "" {
		cfg.User = invokingUser()
	}
	if len(cfg.Shell.Plugins) == 0 {
		cfg.Shell.Plugins = DefaultPlugins()
	}
}

// invokingUser resolves the user the provisioning targets. Under sudo the
// invoking user is SUDO_USER, not root.
func invokingUser() string {
	if u := os.Getenv("SUDO_USER"); u != "" {
		return u
	}
	return os.Getenv("USER")
}
