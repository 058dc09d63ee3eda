package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/lyricist/internal/explorer"
	"github.com/jfmyers9/lyricist/internal/render"
	"github.com/spf13/cobra"
)

var (
	lyricsTopWords int
	lyricsNoText   bool
)

// lyricsCmd represents the lyrics command
var lyricsCmd = &cobra.Command{
	Use:   "lyrics <artist> <song>",
	Short: "Show a song's lyrics with word and sentiment analysis",
	Long: `Fetch a song's lyrics from lyrics.ovh and analyze them.

The analysis shows the number of words, a chart of the most frequent
words, a word cloud and a sentiment score between -1 (negative) and
+1 (positive).

No Spotify credentials are needed.`,
	Example: `  lyricist lyrics "Michael Jackson" "Billie Jean"
  lyricist lyrics --no-lyrics --top 5 Queen "Bohemian Rhapsody"`,
	Args: cobra.ExactArgs(2),
	RunE: runLyrics,
}

func init() {
	rootCmd.AddCommand(lyricsCmd)

	lyricsCmd.Flags().IntVarP(&lyricsTopWords, "top", "n", 0, "Number of top words to chart (overrides config)")
	lyricsCmd.Flags().BoolVar(&lyricsNoText, "no-lyrics", false, "Only print the analysis")
}

func runLyrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top") {
		cfg.TopWords = lyricsTopWords
	}

	logger := setupLogger(logFile, logLevel)
	exp, err := newExplorer(cmd.Context(), cfg, logger, false)
	if err != nil {
		return err
	}

	return printSong(cmd, exp.Song(cmd.Context(), args[0], args[1]), cfg.TopWords)
}

// printSong writes the lyrics and analysis of a song, or why there are none.
func printSong(cmd *cobra.Command, song *explorer.SongResult, topWords int) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - %s\n\n", song.Artist, song.Title)

	if msg := song.Message(); msg != "" {
		fmt.Fprintln(out, msg)
		return nil
	}

	if !lyricsNoText {
		fmt.Fprintf(out, "%s\n\n", strings.TrimSpace(song.Lyrics.Text()))
	}

	return render.Analysis(out, *song.Analysis, topWords)
}
