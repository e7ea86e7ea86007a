package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x9900/enlil/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the enlil configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			cfg, err := config.Get()
			if err != nil {
				return err
			}
			out := outWriter()
			file := config.FileUsed()
			if file == "" {
				file = "(none, environment and defaults only)"
			}
			fmt.Fprintf(out, "config file:   %s\n", file)
			fmt.Fprintf(out, "target_dir:    %s\n", cfg.TargetDir)
			fmt.Fprintf(out, "manifest_file: %s\n", cfg.ManifestFile)
			fmt.Fprintf(out, "video_file:    %s\n", cfg.VideoFile)
			fmt.Fprintf(out, "source_url:    %s\n", cfg.SourceURL)
			fmt.Fprintf(out, "framerate:     %d\n", cfg.Framerate)
			fmt.Fprintf(out, "scale:         %s\n", cfg.Scale)
			fmt.Fprintf(out, "margin_bottom: %d\n", cfg.MarginBottom)
			fmt.Fprintf(out, "concurrency:   %d\n", cfg.Concurrency)
			return nil
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Write(path); err != nil {
				return err
			}
			fmt.Fprintf(outWriter(), "Configuration written to %s, edit it before running enlil.\n", path)
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
