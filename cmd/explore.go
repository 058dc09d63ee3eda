package cmd

import (
	"strings"

	"github.com/jfmyers9/lyricist/internal/tui"
	"github.com/spf13/cobra"
)

// exploreCmd represents the explore command
var exploreCmd = &cobra.Command{
	Use:   "explore [artist]",
	Short: "Browse discographies and lyrics interactively",
	Long: `Open a terminal UI to browse an artist's studio albums, their tracks
and the lyrics of each song with live analysis.

Type an artist name and press Enter, then pick an album and a track.
Tab moves between panes, '/' returns to the artist field and 'q' quits.

Logs go to stderr only when --log-file is not set; use --log-file to
keep them out of the way of the UI.`,
	Args: cobra.ArbitraryArgs,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Console logging would draw over the UI
	level := logLevel
	if logFile == "" {
		level = "error"
	}
	logger := setupLogger(logFile, level)

	exp, err := newExplorer(cmd.Context(), cfg, logger, true)
	if err != nil {
		return err
	}

	app := tui.New(exp, tui.Config{TopWords: cfg.TopWords}, logger)
	return app.Run(cmd.Context(), strings.Join(args, " "))
}
