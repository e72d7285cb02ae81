package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ControlPlaneTaintKey is the taint kubeadm places on control plane nodes.
const ControlPlaneTaintKey = "node-role.kubernetes.io/control-plane"

// RemoveControlPlaneTaint removes the control-plane NoSchedule taint from
// every node carrying it, so a single-node cluster can schedule regular
// workloads. It returns the number of nodes updated.
func RemoveControlPlaneTaint(ctx context.Context, client kubernetes.Interface) (int, error) {
	nodes, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list nodes: %w", err)
	}

	updated := 0
	for i := range nodes.Items {
		node := &nodes.Items[i]

		kept := make([]corev1.Taint, 0, len(node.Spec.Taints))
		for _, taint := range node.Spec.Taints {
			if taint.Key == ControlPlaneTaintKey {
				continue
			}
			kept = append(kept, taint)
		}
		if len(kept) == len(node.Spec.Taints) {
			continue
		}

		node.Spec.Taints = kept
		if _, err := client.CoreV1().Nodes().Update(ctx, node, metav1.UpdateOptions{}); err != nil {
			return updated, fmt.Errorf("failed to untaint node %s: %w", node.Name, err)
		}
		updated++
	}
	return updated, nil
}
