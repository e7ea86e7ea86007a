package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/0x9900/enlil/internal/config"
	"github.com/0x9900/enlil/internal/frames"
	"github.com/0x9900/enlil/internal/noaa"
	"github.com/0x9900/enlil/internal/ui"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the animation manifest and any new frames",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, client, err := loadPipeline()
		if err != nil {
			return err
		}
		_, err = fetchFrames(cmd.Context(), cfg, store, client)
		return err
	},
}

func init() {
	fetchCmd.Flags().BoolVarP(&force, "force", "f", false, "Re-check frames even if the manifest is unchanged")
	rootCmd.AddCommand(fetchCmd)
}

// fetchFrames refreshes the manifest and downloads missing frames. When
// the manifest is unchanged (HTTP 304) and --force is not set, the frame
// scan is skipped entirely.
func fetchFrames(ctx context.Context, cfg *config.Config, store *frames.Store, client *noaa.Client) (frames.FetchResult, error) {
	sp := ui.NewSpinner("Fetching manifest...")
	sp.Start()
	updated, err := client.DownloadManifest(ctx, cfg.SourceURL, cfg.ManifestFile)
	sp.Stop()
	if err != nil {
		return frames.FetchResult{}, err
	}
	if !updated && !force {
		slog.Info("manifest unchanged", "file", cfg.ManifestFile)
		return frames.FetchResult{}, nil
	}
	if updated {
		slog.Info("new manifest downloaded", "file", cfg.ManifestFile)
	}

	entries, err := noaa.LoadManifest(cfg.ManifestFile)
	if err != nil {
		return frames.FetchResult{}, err
	}

	progress := ui.NewProgress()
	result, err := store.Fetch(ctx, client, entries, cfg.Concurrency, progress.Update)
	if err != nil {
		return frames.FetchResult{}, err
	}
	progress.Done(result.New, result.Bytes)
	slog.Info("fetch complete", "frames", len(entries), "new", result.New)
	return result, nil
}
