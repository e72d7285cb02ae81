// Package fileedit provides idempotent line-level edits of plain-text
// configuration files.
package fileedit

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

const filePerm = 0o644

// EnsureLine appends line to the file at path unless an identical line is
// already present. The file is created when missing. It reports whether the
// file was modified.
func EnsureLine(fs afero.Fs, path, line string) (bool, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, existing := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(existing) == line {
			return false, nil
		}
	}

	updated := string(content)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += line + "\n"

	if err := afero.WriteFile(fs, path, []byte(updated), filePerm); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// ReplaceLine replaces every line for which match returns true with a single
// occurrence of replacement, keeping the position of the first match. When
// no line matches, replacement is appended. Repeated calls leave exactly one
// replacement line in the file.
func ReplaceLine(fs afero.Fs, path string, match func(string) bool, replacement string) error {
	content, err := afero.ReadFile(fs, path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(content) == 0 {
		lines = nil
	}

	var out []string
	replaced := false
	for _, line := range lines {
		if match(line) {
			if !replaced {
				out = append(out, replacement)
				replaced = true
			}
			continue
		}
		out = append(out, line)
	}
	if !replaced {
		out = append(out, replacement)
	}

	updated := strings.Join(out, "\n") + "\n"
	if err := afero.WriteFile(fs, path, []byte(updated), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(fs afero.Fs, path string, content []byte, perm os.FileMode) error {
	if idx := strings.LastIndex(path, "/"); idx > 0 {
		dir := path[:idx]
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, content, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
