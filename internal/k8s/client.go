// Package k8s talks to the freshly bootstrapped cluster through client-go.
//
// It backs the post-init steps of the node bootstrapper: removing the
// control-plane taint so workloads schedule on the single node, and the
// final status report.
package k8s

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// AdminKubeconfigPath is the kubeconfig written by kubeadm init. Its
// presence is also the bootstrapper's "cluster already initialized" marker.
const AdminKubeconfigPath = "/etc/kubernetes/admin.conf"

// NewClient builds a Kubernetes clientset from a kubeconfig file.
func NewClient(kubeconfigPath string) (kubernetes.Interface, error) {
	cfg, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig %s: %w", kubeconfigPath, err)
	}
	client, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, nil
}
