package fileedit

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureLine_AppendsOnce(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	for i := 0; i < 5; i++ {
		_, err := EnsureLine(fs, "/home/alice/.bashrc", "alias k=kubectl")
		require.NoError(t, err)
	}

	content, err := afero.ReadFile(fs, "/home/alice/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "alias k=kubectl"))
}

func TestEnsureLine_ReportsModification(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	added, err := EnsureLine(fs, "/rc", "line")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = EnsureLine(fs, "/rc", "line")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestEnsureLine_KeepsExistingContent(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rc", []byte("export EDITOR=vim\n"), 0o644))

	_, err := EnsureLine(fs, "/rc", "alias k=kubectl")
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "/rc")
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=vim\nalias k=kubectl\n", string(content))
}

func TestReplaceLine_CollapsesDuplicates(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	original := "# config\nplugins=(git)\nexport PATH=$PATH\nplugins=(docker)\n"
	require.NoError(t, afero.WriteFile(fs, "/zshrc", []byte(original), 0o644))

	match := func(line string) bool { return strings.HasPrefix(line, "plugins=(") }
	require.NoError(t, ReplaceLine(fs, "/zshrc", match, "plugins=(git zsh-autosuggestions)"))

	content, err := afero.ReadFile(fs, "/zshrc")
	require.NoError(t, err)
	assert.Equal(t, "# config\nplugins=(git zsh-autosuggestions)\nexport PATH=$PATH\n", string(content))
}

func TestReplaceLine_AppendsWhenMissing(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	match := func(line string) bool { return strings.HasPrefix(line, "plugins=(") }
	require.NoError(t, ReplaceLine(fs, "/zshrc", match, "plugins=(git)"))

	content, err := afero.ReadFile(fs, "/zshrc")
	require.NoError(t, err)
	assert.Equal(t, "plugins=(git)\n", string(content))
}

func TestReplaceLine_Idempotent(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	match := func(line string) bool { return strings.HasPrefix(line, "plugins=(") }
	for i := 0; i < 3; i++ {
		require.NoError(t, ReplaceLine(fs, "/zshrc", match, "plugins=(git)"))
	}

	content, err := afero.ReadFile(fs, "/zshrc")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "plugins=(git)"))
}

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	require.NoError(t, WriteFile(fs, "/etc/modules-load.d/k8s.conf", []byte("overlay\n"), 0o644))

	content, err := afero.ReadFile(fs, "/etc/modules-load.d/k8s.conf")
	require.NoError(t, err)
	assert.Equal(t, "overlay\n", string(content))
}
