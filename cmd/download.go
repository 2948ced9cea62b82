package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/user/ytui/content"
	"github.com/user/ytui/pkg/download"
)

var downloadCmd = &cobra.Command{
	Use:   "download <video-id>",
	Short: "Download a video with yt-dlp",
	Long:  `Download a video with yt-dlp into the configured download directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID := args[0]
		dir, _ := cmd.Flags().GetString("dir")

		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}
		if dir == "" {
			dir = cfg.Download.Dir
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("Downloading %s\n", videoID)
		path, err := download.Run(ctx, content.WatchURL(videoID), dir, func(pct float64) {
			fmt.Printf("\r  %5.1f%%", pct)
		})
		fmt.Println()
		if err != nil {
			var dlErr *download.Error
			if errors.As(err, &dlErr) && dlErr.Output != "" {
				fmt.Fprintln(os.Stderr, dlErr.Output)
			}
			return fmt.Errorf("download failed: %w", err)
		}

		fmt.Printf("Saved to %s\n", path)
		return nil
	},
}

func init() {
	downloadCmd.Flags().String("dir", "", "directory to save into (default from config)")
	rootCmd.AddCommand(downloadCmd)
}
