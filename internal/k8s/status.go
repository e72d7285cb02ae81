package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// NodeStatus summarizes a cluster node for the status report.
type NodeStatus struct {
	Name    string
	Ready   bool
	Version string
}

// PodStatus summarizes a kube-system pod for the status report.
type PodStatus struct {
	Name  string
	Phase corev1.PodPhase
}

// ClusterStatus is the post-bootstrap status report.
type ClusterStatus struct {
	Nodes      []NodeStatus
	SystemPods []PodStatus
}

// CollectStatus gathers nodes and kube-system pods.
func CollectStatus(ctx context.Context, client kubernetes.Interface) (*ClusterStatus, error) {
	nodes, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	pods, err := client.CoreV1().Pods(metav1.NamespaceSystem).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list kube-system pods: %w", err)
	}

	status := &ClusterStatus{}
	for _, node := range nodes.Items {
		status.Nodes = append(status.Nodes, NodeStatus{
			Name:    node.Name,
			Ready:   nodeReady(node),
			Version: node.Status.NodeInfo.KubeletVersion,
		})
	}
	for _, pod := range pods.Items {
		status.SystemPods = append(status.SystemPods, PodStatus{
			Name:  pod.Name,
			Phase: pod.Status.Phase,
		})
	}
	return status, nil
}

// Lines renders the status as human-readable report lines.
func (s *ClusterStatus) Lines() []string {
	lines := make([]string, 0, len(s.Nodes)+len(s.SystemPods))
	for _, node := range s.Nodes {
		state := "NotReady"
		if node.Ready {
			state = "Ready"
		}
		lines = append(lines, fmt.Sprintf("node %-20s %-8s %s", node.Name, state, node.Version))
	}
	for _, pod := range s.SystemPods {
		lines = append(lines, fmt.Sprintf("pod  %-40s %s", pod.Name, pod.Phase))
	}
	return lines
}

func nodeReady(node corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
