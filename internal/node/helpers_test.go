package node

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os/user"
	"strings"
	"testing"

	"github.com/spf13/afero"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/kubeprep/kubeprep/internal/config"
	"github.com/kubeprep/kubeprep/internal/k8s"
	"github.com/kubeprep/kubeprep/internal/platform/system"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// chownRecorder wraps a filesystem and records ownership changes, which
// MemMapFs does not surface through Stat.
type chownRecorder struct {
	afero.Fs
	chowns map[string][2]int
}

func (r *chownRecorder) Chown(name string, uid, gid int) error {
	r.chowns[name] = [2]int{uid, gid}
	return nil
}

// staticTransport serves a fixed HTTP response for artifact fetches.
type staticTransport struct {
	status int
	body   string
}

func (t *staticTransport) RoundTrip(_ *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: t.status,
		Status:     http.StatusText(t.status),
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Header:     make(http.Header),
	}, nil
}

// testEnv bundles the fakes behind a sequence context.
type testEnv struct {
	ctx    *sequence.Context
	fs     *chownRecorder
	runner *system.FakeRunner
	out    *bytes.Buffer
	client *fake.Clientset
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Kubernetes: config.Kubernetes{
			Version:        config.DefaultKubernetesVersion,
			PodNetworkCIDR: config.DefaultPodNetworkCIDR,
		},
		User:  "alice",
		Shell: config.Shell{Plugins: config.DefaultPlugins()},
	}

	fs := &chownRecorder{Fs: afero.NewMemMapFs(), chowns: make(map[string][2]int)}
	runner := system.NewFakeRunner()
	out := &bytes.Buffer{}
	client := fake.NewSimpleClientset(taintedNode("cp-0"))

	env := &testEnv{fs: fs, runner: runner, out: out, client: client}
	env.ctx = &sequence.Context{
		Context:    context.Background(),
		Config:     cfg,
		Fs:         fs,
		Runner:     runner,
		Observer:   sequence.NewWriterObserver(out),
		HTTPClient: &http.Client{Transport: &staticTransport{status: http.StatusOK, body: "fake-signing-key"}},
		LookupUser: func(name string) (*user.User, error) {
			return &user.User{Username: name, Uid: "1000", Gid: "1000", HomeDir: "/home/" + name}, nil
		},
		NewKubeClient: func(string) (kubernetes.Interface, error) { return client, nil },
	}
	return env
}

func (e *testEnv) markInitialized(t *testing.T) {
	t.Helper()
	err := afero.WriteFile(e.fs, k8s.AdminKubeconfigPath, []byte("apiVersion: v1\nkind: Config\n"), 0o600)
	if err != nil {
		t.Fatalf("failed to seed admin kubeconfig: %v", err)
	}
}

func taintedNode(name string) *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec: corev1.NodeSpec{
			Taints: []corev1.Taint{
				{Key: k8s.ControlPlaneTaintKey, Effect: corev1.TaintEffectNoSchedule},
			},
		},
		Status: corev1.NodeStatus{
			NodeInfo: corev1.NodeSystemInfo{KubeletVersion: "v1.34.1"},
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
		},
	}
}
