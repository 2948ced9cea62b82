package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/ytui/content"
	"github.com/user/ytui/fetch"
	"github.com/user/ytui/pkg/timeutil"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search YouTube and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("search query must not be empty")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Fetch.Timeout.Duration)
		defer cancel()

		batch, err := a.backend.Fetch(ctx, fetch.Request{Key: content.SearchKey(query)})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDURATION\tCHANNEL\tTITLE")
		fmt.Fprintln(w, "--\t--------\t-------\t-----")

		count := 0
		for _, it := range batch.Items {
			v, ok := it.(content.Video)
			if !ok {
				continue
			}
			if limit > 0 && count >= limit {
				break
			}
			dur := timeutil.FormatDuration(v.Duration)
			if v.Live {
				dur = "LIVE"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.ID, dur, v.Channel, v.Title)
			count++
		}
		w.Flush()

		if count == 0 {
			fmt.Println("No videos found.")
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of videos to print (0 for all)")
	rootCmd.AddCommand(searchCmd)
}
