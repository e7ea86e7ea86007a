package precommit

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/0x9900/enlil/internal/git"
)

// runnerBinary is the external pre-commit runner the hook script defers to.
const runnerBinary = "pre-commit"

// hookMarker identifies scripts written by Install so they can be safely
// replaced later.
const hookMarker = "# installed by enlil hooks install"

const hookScript = `#!/bin/sh
` + hookMarker + `
echo "==> Running pre-commit checks..."
exec ` + runnerBinary + ` run
`

// Install writes the pre-commit hook script into the repository containing
// dir. An existing hook script is replaced only when it was written by a
// previous Install; anything else is left alone and reported.
func Install(dir string) (string, error) {
	if !git.IsRepository(dir) {
		return "", fmt.Errorf("%s is not inside a git repository", dir)
	}
	hooksDir, err := git.HooksDir(dir)
	if err != nil {
		return "", err
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")
	if existing, err := os.ReadFile(hookPath); err == nil {
		if !bytes.Contains(existing, []byte(hookMarker)) {
			return "", fmt.Errorf("refusing to overwrite existing hook %s", hookPath)
		}
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}
	if err := os.WriteFile(hookPath, []byte(hookScript), 0o755); err != nil {
		return "", fmt.Errorf("failed to write hook script: %w", err)
	}
	return hookPath, nil
}

// Run executes the external pre-commit runner with the given arguments,
// streaming its output.
func Run(ctx context.Context, args ...string) error {
	binary, err := exec.LookPath(runnerBinary)
	if err != nil {
		return fmt.Errorf("%q not found, make sure it is correctly installed: %w", runnerBinary, err)
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
