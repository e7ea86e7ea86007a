// Package video assembles staged animation frames into an MP4 using the
// external ffmpeg binary.
package video

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

const ffmpegBinary = "ffmpeg"

// Encoder holds the ffmpeg invocation settings.
type Encoder struct {
	Framerate int
	Scale     string
	LogFile   string
	Verbose   bool
}

// BuildArgs returns the ffmpeg arguments for encoding the enlil-%06d.jpg
// sequence in stagingDir into outFile.
func (e *Encoder) BuildArgs(stagingDir, outFile string) []string {
	return []string{
		"-y",
		"-framerate", strconv.Itoa(e.Framerate),
		"-i", filepath.Join(stagingDir, "enlil-%06d.jpg"),
		"-an",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-vf", "scale=" + e.Scale,
		outFile,
	}
}

// Encode runs ffmpeg over the staged frame sequence and publishes the
// result at videoFile. The encode targets a temporary file in the staging
// directory which is renamed over videoFile only on success, so a failed
// run never leaves a partial video behind.
func (e *Encoder) Encode(ctx context.Context, stagingDir, videoFile string) error {
	binary, err := exec.LookPath(ffmpegBinary)
	if err != nil {
		return fmt.Errorf("%q not found, make sure it is correctly installed: %w", ffmpegBinary, err)
	}

	tmpFile := filepath.Join(stagingDir, fmt.Sprintf("%s-%d.mp4", filepath.Base(videoFile), os.Getpid()))
	args := e.BuildArgs(stagingDir, tmpFile)

	logOut, err := e.openLog(binary, args)
	if err != nil {
		return err
	}
	defer logOut.Close()

	slog.Info("encoding video", "frames", stagingDir, "output", tmpFile, "log", e.LogFile)

	runner := Runner{Binary: binary, Verbose: e.Verbose}
	if err := runner.RunWithWriters(ctx, nil, logOut, args...); err != nil {
		return fmt.Errorf("ffmpeg failed, see %s: %w", e.LogFile, err)
	}

	if err := os.Rename(tmpFile, videoFile); err != nil {
		return fmt.Errorf("failed to publish video %s: %w", videoFile, err)
	}
	slog.Info("video saved", "file", videoFile)
	return nil
}

// openLog appends the command line to the ffmpeg log file and returns the
// handle for ffmpeg's stderr.
func (e *Encoder) openLog(binary string, args []string) (*os.File, error) {
	logFile := e.LogFile
	if logFile == "" {
		logFile = filepath.Join(os.TempDir(), "enlil_animation.log")
		e.LogFile = logFile
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open ffmpeg log: %w", err)
	}
	fmt.Fprintf(f, "%s %v\n\n", binary, args)
	return f, nil
}
