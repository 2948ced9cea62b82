package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/user/ytui/deps"
	"github.com/user/ytui/pkg/download"
	"github.com/user/ytui/tui"
)

var Version = "0.1.0"

var (
	configPath string
	noCache    bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "ytui",
	Short: "Browse YouTube from the terminal",
	Long: `ytui is a terminal browser for YouTube. Move through the home feed,
search results, recommendations, transcripts and comments with the keyboard
and hand videos to an external player such as mpv.

Configuration is read from ~/.config/ytui/config.toml.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The alt screen owns the terminal; log to a file or nowhere.
		if logFile != "" {
			f, err := tea.LogToFile(logFile, "ytui")
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
		} else {
			log.SetOutput(io.Discard)
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return tui.Run(tui.Options{
			Backend:     a.backend,
			Timeout:     a.cfg.Fetch.Timeout.Duration,
			Keys:        a.keys,
			Player:      a.spawner,
			History:     a.history(),
			ConfirmQuit: a.cfg.ConfirmQuit,
			DownloadDir: a.cfg.Download.Dir,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ytui version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the configured players and yt-dlp are installed and available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}

		fmt.Println("Checking dependencies...")
		fmt.Println()

		programs := []string{cfg.Player.Video[0]}
		if len(cfg.Player.Stream) > 0 && cfg.Player.Stream[0] != programs[0] {
			programs = append(programs, cfg.Player.Stream[0])
		}
		programs = append(programs, download.Program)

		for _, p := range programs {
			if err := deps.Check(p); err != nil {
				fmt.Printf("✗ %s: NOT FOUND\n", p)
				if depErr, ok := err.(*deps.DependencyError); ok && depErr.InstallURL != "" {
					fmt.Printf("  Install from: %s\n", depErr.InstallURL)
				}
			} else {
				fmt.Printf("✓ %s: OK\n", p)
			}
		}

		fmt.Println()
		if len(deps.CheckAll(programs...)) == 0 {
			fmt.Println("All dependencies are installed!")
			return nil
		}
		fmt.Println("Some dependencies are missing. Please install them to use all features.")
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/ytui/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "always fetch pages from the network")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write debug logs to this file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
