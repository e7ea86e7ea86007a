package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes an external binary with shared logging and output
// handling.
type Runner struct {
	Binary  string
	Dir     string
	Verbose bool
}

func (r Runner) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	return cmd
}

func (r Runner) log(args []string) {
	if r.Verbose {
		slog.Debug("running command", "cmd", fmt.Sprintf("%s %s", r.Binary, strings.Join(args, " ")))
	}
}

// RunWithWriters executes the command with the provided writers attached.
func (r Runner) RunWithWriters(ctx context.Context, stdout, stderr io.Writer, args ...string) error {
	r.log(args)
	cmd := r.command(ctx, args...)
	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}
	return cmd.Run()
}
