package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/0x9900/enlil/internal/config"
	"github.com/0x9900/enlil/internal/frames"
	"github.com/0x9900/enlil/internal/video"
)

var ffmpegLog string

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Encode the cached frames into the MP4 animation",
	Long: `Encode the cached frames into the MP4 animation without touching
the network. Frames are hardlinked into a staging directory as a dense
numeric sequence and handed to ffmpeg.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, _, err := loadPipeline()
		if err != nil {
			return err
		}
		return encodeVideo(cmd.Context(), cfg, store)
	},
}

func init() {
	animateCmd.Flags().StringVar(&ffmpegLog, "ffmpeg-log", "", "ffmpeg log file (default is $TMPDIR/enlil_animation.log)")
	rootCmd.AddCommand(animateCmd)
}

func encodeVideo(ctx context.Context, cfg *config.Config, store *frames.Store) error {
	files, err := store.Select()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no frames in %s, run fetch first", cfg.TargetDir)
	}
	slog.Info("frames selected for animation", "count", len(files))

	workdir, cleanup, err := store.Stage(files)
	if err != nil {
		return err
	}
	defer cleanup()

	encoder := &video.Encoder{
		Framerate: cfg.Framerate,
		Scale:     cfg.Scale,
		LogFile:   ffmpegLog,
		Verbose:   verbose,
	}
	return encoder.Encode(ctx, workdir, cfg.VideoFile)
}
