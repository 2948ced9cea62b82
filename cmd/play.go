package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/ytui/db"
	"github.com/user/ytui/pkg/timeutil"
	"github.com/user/ytui/player"
)

var playCmd = &cobra.Command{
	Use:   "play <video-id>",
	Short: "Play a video in the configured player",
	Long: `Play a video in the configured player. The --start flag accepts seconds
or a timestamp such as 1:23.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID := args[0]
		startStr, _ := cmd.Flags().GetString("start")

		start := 0
		if startStr != "" {
			s, err := timeutil.ParseDuration(startStr)
			if err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}
			start = s
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.spawner.PlayVideo(videoID, start)
		if err != nil {
			return fmt.Errorf("failed to start player: %w", err)
		}
		if err := a.history().RecordPlay(db.Play{VideoID: videoID, Start: start}); err != nil {
			return fmt.Errorf("failed to record play: %w", err)
		}

		fmt.Printf("Playing %s (pid %d)\n", player.VideoURL(videoID, start), p.Pid)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played videos",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		plays, err := db.RecentPlays(a.db, limit)
		if err != nil {
			return fmt.Errorf("failed to query history: %w", err)
		}
		if len(plays) == 0 {
			fmt.Println("No plays recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PLAYED\tID\tSTART\tTITLE")
		fmt.Fprintln(w, "------\t--\t-----\t-----")
		for _, p := range plays {
			start := timeutil.FormatDuration(p.Start)
			if p.Live {
				start = "LIVE"
			}
			title := p.Title
			if title == "" {
				title = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.PlayedAt.Local().Format("2006-01-02 15:04"), p.VideoID, start, title)
		}
		w.Flush()
		return nil
	},
}

// playerDialTimeout bounds connecting to the mpv IPC socket.
const playerDialTimeout = 2 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the running mpv player is doing",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := player.Dial(player.DefaultSocketPath(), playerDialTimeout)
		if err != nil {
			return fmt.Errorf("no player running: %w", err)
		}
		defer conn.Close()

		st, err := conn.Status()
		if err != nil {
			return fmt.Errorf("failed to query player: %w", err)
		}

		state := "playing"
		if st.Paused {
			state = "paused"
		}
		fmt.Printf("Title:    %s\n", st.Title)
		fmt.Printf("State:    %s\n", state)
		fmt.Printf("Position: %s / %s\n", timeutil.FormatDuration(int(st.Position)), timeutil.FormatDuration(int(st.Duration)))
		return nil
	},
}

func init() {
	playCmd.Flags().String("start", "", "start position (seconds or mm:ss)")
	historyCmd.Flags().Int("limit", 20, "number of plays to list")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
}
