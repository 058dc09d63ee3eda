package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jfmyers9/lyricist/internal/analysis"
	"github.com/jfmyers9/lyricist/internal/render"
	"github.com/spf13/cobra"
)

var analyzeTopWords int

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Analyze text from a file or stdin",
	Long: `Run the lyric analysis on arbitrary text without any network access.

Reads the named file, or stdin when no file or "-" is given.`,
	Example: `  lyricist analyze lyrics.txt
  echo "I love love this song" | lyricist analyze`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVarP(&analyzeTopWords, "top", "n", 0, "Number of top words to chart (overrides config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top") {
		cfg.TopWords = analyzeTopWords
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result := analysis.Analyzer{Scorer: analysis.LexiconScorer{}}.Analyze(string(text))
	return render.Analysis(cmd.OutOrStdout(), result, cfg.TopWords)
}
