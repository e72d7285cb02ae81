// Package shellenv installs and configures a zsh environment for the
// target user.
//
// The installer is a fixed ordered sequence: the zsh package, the Oh My Zsh
// framework, the plugin clones, the plugins line in .zshrc and the default
// shell switch. Every step is guarded so repeated runs neither re-download
// nor duplicate configuration.
package shellenv

import (
	"path/filepath"

	"github.com/kubeprep/kubeprep/internal/sequence"
)

// OhMyZshInstallURL is the upstream unattended install script.
const OhMyZshInstallURL = "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh"

// pluginRepos maps plugin names to their clone URLs. Plugins without an
// entry ship with Oh My Zsh and only need to appear in .zshrc.
var pluginRepos = map[string]string{
	"zsh-autosuggestions":          "https://github.com/zsh-users/zsh-autosuggestions",
	"zsh-syntax-highlighting":      "https://github.com/zsh-users/zsh-syntax-highlighting.git",
	"zsh-completions":              "https://github.com/zsh-users/zsh-completions",
	"zsh-history-substring-search": "https://github.com/zsh-users/zsh-history-substring-search",
}

// Sequence returns the installer's step runner.
func Sequence() *sequence.Runner {
	r := sequence.NewRunner()
	r.Add(
		&ZshPackageStep{},
		&OhMyZshStep{},
		&PluginsStep{},
		&ZshrcStep{},
		&DefaultShellStep{},
	)
	return r
}

// customDir returns the Oh My Zsh custom directory for the target user,
// honoring the ZSH_CUSTOM override.
func customDir(ctx *sequence.Context, home string) string {
	if ctx.Config.Shell.CustomDir != "" {
		return ctx.Config.Shell.CustomDir
	}
	return filepath.Join(home, ".oh-my-zsh", "custom")
}
