package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/lyricist/internal/render"
	"github.com/spf13/cobra"
)

// albumsCmd represents the albums command
var albumsCmd = &cobra.Command{
	Use:   "albums <artist>",
	Short: "List an artist's studio albums",
	Long: `List the studio albums of an artist.

An album is listed when Spotify has it and the artist's Wikipedia
discography names it under "Studio albums". Titles are compared after
trimming, collapsing whitespace and ignoring case. With
--match-mode=edition-insensitive, trailing edition markers such as
"(Remastered)" or "- Deluxe Edition" are ignored as well.

Exit codes:
  0 - Albums listed, or none found
  1 - Artist not found or the catalog could not be reached`,
	Example: `  lyricist albums "Michael Jackson"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAlbums,
}

func init() {
	rootCmd.AddCommand(albumsCmd)
}

func runAlbums(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(logFile, logLevel)
	exp, err := newExplorer(cmd.Context(), cfg, logger, true)
	if err != nil {
		return err
	}

	artist := strings.Join(args, " ")
	result, err := exp.Discography(cmd.Context(), artist)
	if err != nil {
		return fmt.Errorf("failed to load discography of %s: %w", artist, err)
	}

	out := cmd.OutOrStdout()
	if msg := result.Message(); msg != "" {
		fmt.Fprintln(out, msg)
		return nil
	}

	return render.Albums(out, result.Albums)
}
