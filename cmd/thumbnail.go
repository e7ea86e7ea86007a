package cmd

import (
	"github.com/spf13/cobra"
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail",
	Short: "Regenerate latest.png from the newest cached frame",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, _, err := loadPipeline()
		if err != nil {
			return err
		}
		return store.Thumbnail()
	},
}

func init() {
	rootCmd.AddCommand(thumbnailCmd)
}
