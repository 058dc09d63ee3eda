package cmd

import (
	"fmt"

	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/internal/render"
	"github.com/spf13/cobra"
)

// tracksCmd represents the tracks command
var tracksCmd = &cobra.Command{
	Use:   "tracks <artist> <album> [track]",
	Short: "List the tracks of a studio album",
	Long: `List the tracks of one of an artist's studio albums.

The album is looked up among the artist's studio albums (see 'lyricist
albums') by title, ignoring case and extra whitespace. When a track is
given as well, its lyrics and analysis are shown instead of the list.`,
	Example: `  lyricist tracks "Michael Jackson" thriller
  lyricist tracks "Michael Jackson" thriller "beat it"`,
	Args:    cobra.RangeArgs(2, 3),
	RunE:    runTracks,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}

func runTracks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(logFile, logLevel)
	exp, err := newExplorer(cmd.Context(), cfg, logger, true)
	if err != nil {
		return err
	}

	artist, title := args[0], args[1]
	result, err := exp.Discography(cmd.Context(), artist)
	if err != nil {
		return fmt.Errorf("failed to load discography of %s: %w", artist, err)
	}

	out := cmd.OutOrStdout()
	if msg := result.Message(); msg != "" {
		fmt.Fprintln(out, msg)
		return nil
	}

	album, ok := discography.FindAlbum(result.Albums, title)
	if !ok {
		return fmt.Errorf("%w: %q is not a studio album of %s", discography.ErrAlbumNotFound, title, artist)
	}

	tracks, err := exp.Tracks(cmd.Context(), album)
	if err != nil {
		return err
	}

	if len(args) == 3 {
		track, ok := discography.FindTrack(tracks, args[2])
		if !ok {
			return fmt.Errorf("%w: %q is not on %s", discography.ErrTrackNotFound, args[2], album.Title)
		}
		return printSong(cmd, exp.Song(cmd.Context(), artist, track.Name), cfg.TopWords)
	}

	header := album.Title
	if album.ReleaseDate != "" {
		header += " (" + album.ReleaseDate + ")"
	}
	fmt.Fprintf(out, "%s\n\n", header)
	return render.Tracks(out, tracks)
}
