package shellenv

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kubeprep/kubeprep/internal/fileedit"
	"github.com/kubeprep/kubeprep/internal/sequence"
)

// ZshrcStep rewrites the plugins line in the target user's .zshrc. The
// rewrite is line-structured: every existing plugins= line is collapsed
// into a single generated one, so repeated runs keep exactly one.
type ZshrcStep struct{}

// Name implements sequence.Step.
func (s *ZshrcStep) Name() string { return "zshrc-plugins" }

// Run implements sequence.Step.
func (s *ZshrcStep) Run(ctx *sequence.Context) error {
	target, err := ctx.TargetUser()
	if err != nil {
		return err
	}

	zshrc := filepath.Join(target.Home, ".zshrc")
	line := PluginsLine(ctx.Config.Shell.Plugins)

	if err := fileedit.ReplaceLine(ctx.Fs, zshrc, isPluginsLine, line); err != nil {
		return err
	}
	if err := ctx.Fs.Chown(zshrc, target.UID, target.GID); err != nil {
		return fmt.Errorf("failed to chown %s: %w", zshrc, err)
	}
	return nil
}

// PluginsLine renders the zshrc plugin declaration.
func PluginsLine(plugins []string) string {
	return fmt.Sprintf("plugins=(%s)", strings.Join(plugins, " "))
}

func isPluginsLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "plugins=(")
}

// DefaultShellStep makes zsh the target user's login shell.
type DefaultShellStep struct{}

// Name implements sequence.Step.
func (s *DefaultShellStep) Name() string { return "default-shell" }

// Run implements sequence.Step.
func (s *DefaultShellStep) Run(ctx *sequence.Context) error {
	target, err := ctx.TargetUser()
	if err != nil {
		return err
	}

	zshPath, err := ctx.Runner.LookPath("zsh")
	if err != nil {
		return fmt.Errorf("zsh not found after install: %w", err)
	}
	if err := ctx.Runner.Run(ctx, "chsh", "-s", zshPath, target.Name); err != nil {
		return fmt.Errorf("failed to change default shell: %w", err)
	}
	return nil
}
