// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"os/exec"
)

// openInEditor hands content to the user's $EDITOR through a temp file
// and returns whatever they saved. Falls back to vi when $EDITOR is
// unset.
func openInEditor(content string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	file, err := os.CreateTemp("", "tro-card-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, file.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor '%s' failed: %w", editor, err)
	}

	edited, err := os.ReadFile(file.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
