package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/ytui/db"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the page cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many pages are cached",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := db.GetPageStats(a.db)
		if err != nil {
			return fmt.Errorf("failed to read cache stats: %w", err)
		}

		fmt.Printf("Pages:  %d\n", stats.Entries)
		fmt.Printf("Size:   %s\n", formatBytes(stats.Bytes))
		if stats.Entries > 0 {
			fmt.Printf("Oldest: %s\n", stats.Oldest.Local().Format("2006-01-02 15:04"))
			fmt.Printf("Newest: %s\n", stats.Newest.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached page",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := db.ClearPages(a.db)
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		if a.cached != nil {
			a.cached.Purge()
		}
		fmt.Printf("Removed %d cached pages\n", n)
		return nil
	},
}

// formatBytes renders n with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
