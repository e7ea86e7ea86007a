// Package frames manages the local cache of ENLIL animation frames.
package frames

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/0x9900/enlil/internal/noaa"
)

// framePrefix is the filename prefix of frames published in the NOAA
// manifest; purge only ever touches files carrying it.
const framePrefix = "enlil_com"

// Store is a frame cache rooted at Dir.
type Store struct {
	Dir          string
	MarginBottom int
}

// FetchResult summarizes a Fetch run.
type FetchResult struct {
	New   int
	Bytes int64
}

// Fetch downloads every manifest frame missing from the store, padding
// each new frame with the configured bottom margin. Downloads run with
// bounded concurrency. The optional progress callback is invoked after
// each frame with the number of frames handled so far.
func (s *Store) Fetch(ctx context.Context, client *noaa.Client, entries []noaa.Entry, concurrency int, progress func(done, total int)) (FetchResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		newFrames  atomic.Int64
		totalBytes atomic.Int64
		done       atomic.Int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, entry := range entries {
		entry := entry // per-iteration copy; required under the go 1.21 directive
		g.Go(func() error {
			defer func() {
				if progress != nil {
					progress(int(done.Add(1)), len(entries))
				}
			}()

			name := path.Base(entry.URL)
			dest := filepath.Join(s.Dir, name)
			if _, err := os.Stat(dest); err == nil {
				return nil
			}

			n, err := client.DownloadImage(ctx, entry.URL, dest)
			if err != nil {
				return err
			}
			if err := AddMargin(dest, 0, 0, s.MarginBottom, 0); err != nil {
				return fmt.Errorf("failed to pad %s: %w", name, err)
			}
			slog.Info("frame saved", "file", dest)

			newFrames.Add(1)
			totalBytes.Add(n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return FetchResult{}, err
	}
	return FetchResult{New: int(newFrames.Load()), Bytes: totalBytes.Load()}, nil
}

// Purge deletes cached frames that are no longer listed in the manifest.
// Files outside the manifest prefix are never touched. Individual delete
// failures are logged and skipped.
func (s *Store) Purge(entries []noaa.Entry) (int, error) {
	current := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		current[path.Base(entry.URL)] = struct{}{}
	}

	dirents, err := os.ReadDir(s.Dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read frame directory: %w", err)
	}

	count := 0
	for _, dirent := range dirents {
		name := dirent.Name()
		if !strings.HasPrefix(name, framePrefix) {
			continue
		}
		if _, ok := current[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir, name)); err != nil {
			slog.Error("failed to delete stale frame", "file", name, "error", err)
			continue
		}
		slog.Debug("stale frame deleted", "file", name)
		count++
	}
	return count, nil
}

// Select returns the cached frame files in lexical order, which for the
// NOAA naming scheme is also chronological order.
func (s *Store) Select() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.Dir, "*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("failed to list frames: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
