package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Kubernetes: Kubernetes{
			Version:        DefaultKubernetesVersion,
			PodNetworkCIDR: DefaultPodNetworkCIDR,
		},
		User: "alice",
		Shell: Shell{
			Plugins: DefaultPlugins(),
		},
	}
}

func TestRepoURL(t *testing.T) {
	t.Parallel()
	k := Kubernetes{Version: "1.31"}

	assert.Equal(t, "https://pkgs.k8s.io/core:/stable:/v1.31/deb/", k.RepoURL())
	assert.Equal(t, "https://pkgs.k8s.io/core:/stable:/v1.31/deb/Release.key", k.ReleaseKeyURL())
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad version",
			mutate:  func(c *Config) { c.Kubernetes.Version = "v1.31.2" },
			wantErr: "not a <major>.<minor> version",
		},
		{
			name:    "bad cidr",
			mutate:  func(c *Config) { c.Kubernetes.PodNetworkCIDR = "10.244.0.0" },
			wantErr: "CIDR",
		},
		{
			name:    "empty user",
			mutate:  func(c *Config) { c.User = "" },
			wantErr: "target user is empty",
		},
		{
			name:    "no plugins",
			mutate:  func(c *Config) { c.Shell.Plugins = nil },
			wantErr: "plugin list is empty",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
