package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/0x9900/enlil/internal/noaa"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached frames no longer listed in the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, _, err := loadPipeline()
		if err != nil {
			return err
		}

		entries, err := noaa.LoadManifest(cfg.ManifestFile)
		if err != nil {
			return err
		}

		slog.Info("cleaning up non active frames")
		count, err := store.Purge(entries)
		if err != nil {
			return err
		}
		slog.Info("purge complete", "deleted", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
