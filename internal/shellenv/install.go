package shellenv

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/fileedit"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// installScriptPath is where the Oh My Zsh installer is staged before
// execution.
const installScriptPath = "/tmp/kubeprep-ohmyzsh-install.sh"

// ZshPackageStep installs the zsh package unless the binary is already on
// the PATH.
type ZshPackageStep struct{}

// Name implements sequence.Step.
func (s *ZshPackageStep) Name() string { return "zsh-package" }

// Run implements sequence.Step.
func (s *ZshPackageStep) Run(ctx *sequence.Context) error {
	if path, err := ctx.Runner.LookPath("zsh"); err == nil {
		ctx.Observer.Info("zsh already installed at %s", path)
		return nil
	}
	if err := ctx.Runner.RunEnv(ctx, []string{"DEBIAN_FRONTEND=noninteractive"},
		"apt-get", "install", "-y", "zsh"); err != nil {
		return fmt.Errorf("zsh install failed: %w", err)
	}
	return nil
}

// OhMyZshStep installs the Oh My Zsh framework for the target user. The
// step is guarded on the framework directory; the install script runs
// unattended and as the target user so the tree ends up user-owned.
type OhMyZshStep struct{}

// Name implements sequence.Step.
func (s *OhMyZshStep) Name() string { return "oh-my-zsh" }

// Run implements sequence.Step.
func (s *OhMyZshStep) Run(ctx *sequence.Context) error {
	target, err := ctx.TargetUser()
	if err != nil {
		return err
	}

	omzDir := filepath.Join(target.Home, ".oh-my-zsh")
	exists, err := afero.DirExists(ctx.Fs, omzDir)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", omzDir, err)
	}
	if exists {
		ctx.Observer.Warn("oh-my-zsh already installed in %s, skipping", omzDir)
		return nil
	}

	script, err := ctx.Fetch(OhMyZshInstallURL)
	if err != nil {
		return err
	}
	if err := fileedit.WriteFile(ctx.Fs, installScriptPath, script, 0o755); err != nil {
		return err
	}
	defer func() { _ = ctx.Fs.Remove(installScriptPath) }()

	// RUNZSH/CHSH keep the installer from dropping into an interactive
	// shell; the shell switch is a dedicated step.
	if err := ctx.Runner.Run(ctx, "sudo", "-u", target.Name,
		"env", "RUNZSH=no", "CHSH=no",
		"sh", installScriptPath, "--unattended"); err != nil {
		return fmt.Errorf("oh-my-zsh install failed: %w", err)
	}
	return nil
}

// PluginsStep clones the third-party plugins into the custom plugin
// directory. Clones run as the target user; existing clones are kept.
type PluginsStep struct{}

// Name implements sequence.Step.
func (s *PluginsStep) Name() string { return "zsh-plugins" }

// Run implements sequence.Step.
func (s *PluginsStep) Run(ctx *sequence.Context) error {
	target, err := ctx.TargetUser()
	if err != nil {
		return err
	}

	pluginDir := filepath.Join(customDir(ctx, target.Home), "plugins")
	for _, plugin := range ctx.Config.Shell.Plugins {
		repo, needsClone := pluginRepos[plugin]
		if !needsClone {
			continue
		}

		dest := filepath.Join(pluginDir, plugin)
		exists, err := afero.DirExists(ctx.Fs, dest)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", dest, err)
		}
		if exists {
			ctx.Observer.Info("plugin %s already cloned", plugin)
			continue
		}

		if err := ctx.Runner.Run(ctx, "sudo", "-u", target.Name,
			"git", "clone", "--depth=1", repo, dest); err != nil {
			return fmt.Errorf("failed to clone plugin %s: %w", plugin, err)
		}
	}
	return nil
}
