// Package cmd implements the enlil command-line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/0x9900/enlil/internal/config"
	"github.com/0x9900/enlil/internal/frames"
	"github.com/0x9900/enlil/internal/logging"
	"github.com/0x9900/enlil/internal/noaa"
)

var (
	cfgFile   string
	force     bool
	verbose   bool
	configErr error
	execCtx   = context.Background()

	rootCmd = &cobra.Command{
		Use:   "enlil",
		Short: "enlil - ENLIL solar wind animation builder",
		Long: `enlil downloads the ENLIL solar wind model imagery published by ` +
			`NOAA SWPC and assembles it into an MP4 animation.

Run without a subcommand it executes the full pipeline: fetch the
animation manifest, download new frames, purge stale ones, encode the
video, and refresh the thumbnail.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context())
		},
	}
)

// Execute runs the root command with the process context.
func Execute() error {
	return rootCmd.ExecuteContext(execCtx)
}

// SetContext wires the signal-aware process context into command execution.
func SetContext(ctx context.Context) {
	execCtx = ctx
}

// RootCmd exposes the root command for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is searched: ./enlil.yaml, ~/.enlil.yaml, ~/.local/enlil.yaml, /etc/enlil.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Create the video even if there is no new data")
}

func initConfig() {
	logging.Setup(verbose)
	configErr = config.Init(cfgFile)
}

// loadPipeline resolves the configuration and builds the pipeline pieces.
func loadPipeline() (*config.Config, *frames.Store, *noaa.Client, error) {
	if configErr != nil {
		return nil, nil, nil, fmt.Errorf("configuration error: %w", configErr)
	}
	cfg, err := config.Get()
	if err != nil {
		return nil, nil, nil, err
	}

	info, err := os.Stat(cfg.TargetDir)
	if err != nil || !info.IsDir() {
		return nil, nil, nil, fmt.Errorf("directory %q does not exist", cfg.TargetDir)
	}

	store := &frames.Store{Dir: cfg.TargetDir, MarginBottom: cfg.MarginBottom}
	return cfg, store, noaa.NewClient(""), nil
}

func runPipeline(ctx context.Context) error {
	cfg, store, client, err := loadPipeline()
	if err != nil {
		return err
	}

	result, err := fetchFrames(ctx, cfg, store, client)
	if err != nil {
		return err
	}

	if result.New == 0 && !force {
		slog.Info("nothing to do, no new frames")
		return nil
	}

	entries, err := noaa.LoadManifest(cfg.ManifestFile)
	if err != nil {
		return err
	}
	if _, err := store.Purge(entries); err != nil {
		return err
	}
	if err := encodeVideo(ctx, cfg, store); err != nil {
		return err
	}
	return store.Thumbnail()
}
