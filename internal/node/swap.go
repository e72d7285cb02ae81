package node

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/kubeprep/kubeprep/internal/sequence"
)

// FstabPath is the filesystem table edited to keep swap off across reboots.
const FstabPath = "/etc/fstab"

// DisableSwapStep turns swap off and comments out swap entries in fstab.
// The kubelet refuses to start with swap enabled.
type DisableSwapStep struct{}

// Name implements sequence.Step.
func (s *DisableSwapStep) Name() string { return "disable-swap" }

// Run implements sequence.Step.
func (s *DisableSwapStep) Run(ctx *sequence.Context) error {
	if err := ctx.Runner.Run(ctx, "swapoff", "-a"); err != nil {
		return fmt.Errorf("swapoff failed: %w", err)
	}

	changed, err := commentSwapEntries(ctx.Fs)
	if err != nil {
		return err
	}
	if changed == 0 {
		ctx.Observer.Info("no active swap entries in %s", FstabPath)
	}
	return nil
}

// commentSwapEntries comments out every fstab entry whose filesystem type
// field is "swap". Entries are recognized by field position rather than
// substring matching, so device names containing "swap" elsewhere are left
// alone. Returns the number of entries commented out.
func commentSwapEntries(fs afero.Fs) (int, error) {
	content, err := afero.ReadFile(fs, FstabPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", FstabPath, err)
	}

	lines := strings.Split(string(content), "\n")
	changed := 0
	for i, line := range lines {
		if isSwapEntry(line) {
			lines[i] = "#" + line
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}

	if err := afero.WriteFile(fs, FstabPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", FstabPath, err)
	}
	return changed, nil
}

func isSwapEntry(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	fields := strings.Fields(trimmed)
	return len(fields) >= 3 && fields[2] == "swap"
}
