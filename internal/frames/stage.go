package frames

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Stage creates the ffmpeg staging directory under the store and links
// the given files into it as a dense enlil-%06d.jpg sequence starting at
// 000001. The returned cleanup removes the staging tree.
func (s *Store) Stage(files []string) (string, func(), error) {
	workdir := filepath.Join(s.Dir, "_workdir")
	if err := os.Mkdir(workdir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(workdir); err != nil {
			slog.Error("failed to remove staging directory", "dir", workdir, "error", err)
		}
	}

	for i, file := range files {
		target := filepath.Join(workdir, fmt.Sprintf("enlil-%06d.jpg", i+1))
		if err := link(file, target); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to stage %s: %w", file, err)
		}
		slog.Debug("frame staged", "file", target)
	}
	return workdir, cleanup, nil
}

// link hardlinks src to dst, copying when the filesystem refuses links.
func link(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
