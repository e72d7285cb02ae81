// Package containerd edits the containerd daemon configuration.
//
// The bootstrapper needs two changes to the stock configuration: the runc
// runtime must use the systemd cgroup driver (kubelet runs with it) and the
// sandbox image must match the one kubeadm expects. The configuration is
// parsed, modified and serialized instead of being patched with text
// substitution, so unrelated settings survive untouched.
package containerd

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ConfigPath is where containerd reads its configuration.
const ConfigPath = "/etc/containerd/config.toml"

// SandboxImage is the pause image pinned for the CRI plugin.
const SandboxImage = "registry.k8s.io/pause:3.10"

const criPlugin = "io.containerd.grpc.v1.cri"

// Patch parses a containerd configuration, enables the systemd cgroup
// driver for runc and pins the sandbox image, and returns the serialized
// result.
func Patch(data []byte) ([]byte, error) {
	var cfg map[string]interface{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse containerd config: %w", err)
	}

	cri := ensureTable(cfg, "plugins", criPlugin)
	cri["sandbox_image"] = SandboxImage

	options := ensureTable(cri, "containerd", "runtimes", "runc", "options")
	options["SystemdCgroup"] = true

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to serialize containerd config: %w", err)
	}
	return buf.Bytes(), nil
}

// ensureTable walks nested tables under m, creating missing ones, and
// returns the innermost table.
func ensureTable(m map[string]interface{}, keys ...string) map[string]interface{} {
	current := m
	for _, key := range keys {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[key] = next
		}
		current = next
	}
	return current
}
