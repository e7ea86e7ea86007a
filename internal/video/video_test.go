package video

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	enc := &Encoder{Framerate: 10, Scale: "800:542"}
	args := enc.BuildArgs("/work", "/work/out.mp4")

	assert.Equal(t, []string{
		"-y",
		"-framerate", "10",
		"-i", filepath.Join("/work", "enlil-%06d.jpg"),
		"-an",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-vf", "scale=800:542",
		"/work/out.mp4",
	}, args)
}

func TestBuildArgsCustomSettings(t *testing.T) {
	enc := &Encoder{Framerate: 25, Scale: "1024:576"}
	args := enc.BuildArgs("/staging", "/tmp/video.mp4")

	assert.Contains(t, args, "25")
	assert.Contains(t, args, "scale=1024:576")
}

func TestEncodeMissingFFmpeg(t *testing.T) {
	// An empty PATH guarantees the lookup fails.
	t.Setenv("PATH", t.TempDir())

	enc := &Encoder{Framerate: 10, Scale: "800:542"}
	err := enc.Encode(context.Background(), t.TempDir(), "out.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg")
}

func TestRunnerRunWithWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	runner := Runner{Binary: "sh"}
	err := runner.RunWithWriters(context.Background(), &out, &errOut, "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", out.String())
	assert.Equal(t, "err\n", errOut.String())
}

func TestRunnerRunWithWritersFailure(t *testing.T) {
	var errOut bytes.Buffer
	runner := Runner{Binary: "sh"}
	err := runner.RunWithWriters(context.Background(), nil, &errOut, "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, "broken\n", errOut.String())
}
