package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func controlPlaneNode(name string) *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec: corev1.NodeSpec{
			Taints: []corev1.Taint{
				{Key: ControlPlaneTaintKey, Effect: corev1.TaintEffectNoSchedule},
			},
		},
	}
}

func TestRemoveControlPlaneTaint(t *testing.T) {
	t.Parallel()
	client := fake.NewSimpleClientset(controlPlaneNode("cp-0"))

	updated, err := RemoveControlPlaneTaint(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	node, err := client.CoreV1().Nodes().Get(context.Background(), "cp-0", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Empty(t, node.Spec.Taints)
}

func TestRemoveControlPlaneTaint_KeepsOtherTaints(t *testing.T) {
	t.Parallel()
	node := controlPlaneNode("cp-0")
	node.Spec.Taints = append(node.Spec.Taints, corev1.Taint{
		Key:    "disk-pressure",
		Effect: corev1.TaintEffectNoExecute,
	})
	client := fake.NewSimpleClientset(node)

	updated, err := RemoveControlPlaneTaint(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	got, err := client.CoreV1().Nodes().Get(context.Background(), "cp-0", metav1.GetOptions{})
	require.NoError(t, err)
	require.Len(t, got.Spec.Taints, 1)
	assert.Equal(t, "disk-pressure", got.Spec.Taints[0].Key)
}

func TestRemoveControlPlaneTaint_NoTaints(t *testing.T) {
	t.Parallel()
	client := fake.NewSimpleClientset(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "cp-0"},
	})

	updated, err := RemoveControlPlaneTaint(context.Background(), client)
	require.NoError(t, err)
	assert.Zero(t, updated)
}
