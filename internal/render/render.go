// Package render formats albums, tracks and lyric analytics as plain
// terminal text.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/jfmyers9/lyricist/internal/analysis"
	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/mattn/go-runewidth"
)

// PadToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func PadToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Wide runes can leave the truncation one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}

// Table writes rows as aligned columns under a header. Columns wider than
// maxWidth are truncated; maxWidth <= 0 disables truncation.
func Table(w io.Writer, headers []string, rows [][]string, maxWidth int) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	if maxWidth > 0 {
		for i := range widths {
			if widths[i] > maxWidth {
				widths[i] = maxWidth
			}
		}
	}

	writeRow := func(cells []string) error {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = PadToWidth(cell, widths[i])
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	if err := writeRow(headers); err != nil {
		return err
	}
	rule := make([]string, len(widths))
	for i, cw := range widths {
		rule[i] = strings.Repeat("-", cw)
	}
	if err := writeRow(rule); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Albums writes a numbered album table with release dates and links.
func Albums(w io.Writer, albums []discography.Album) error {
	rows := make([][]string, len(albums))
	for i, a := range albums {
		rows[i] = []string{fmt.Sprintf("%d", i+1), a.Title, a.ReleaseDate, a.Link}
	}
	return Table(w, []string{"#", "ALBUM", "RELEASED", "LINK"}, rows, 60)
}

// Tracks writes a track table. The disc column only appears for
// multi-disc albums.
func Tracks(w io.Writer, tracks []discography.Track) error {
	multiDisc := false
	for _, t := range tracks {
		if t.Disc > 1 {
			multiDisc = true
			break
		}
	}

	headers := []string{"#", "TITLE", "LENGTH"}
	if multiDisc {
		headers = []string{"DISC", "#", "TITLE", "LENGTH"}
	}

	rows := make([][]string, len(tracks))
	for i, t := range tracks {
		row := []string{fmt.Sprintf("%d", t.Position), t.Name, Duration(t.Duration)}
		if multiDisc {
			row = append([]string{fmt.Sprintf("%d", t.Disc)}, row...)
		}
		rows[i] = row
	}
	return Table(w, headers, rows, 60)
}

// Duration formats d as m:ss, or "-" when unknown.
func Duration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Bars writes a horizontal bar chart of word counts, the longest bar being
// width cells.
func Bars(w io.Writer, words []analysis.WordCount, width int) error {
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		width = 30
	}

	labelWidth, max := 0, 0
	for _, wc := range words {
		if lw := runewidth.StringWidth(wc.Word); lw > labelWidth {
			labelWidth = lw
		}
		if wc.Count > max {
			max = wc.Count
		}
	}
	if labelWidth > 20 {
		labelWidth = 20
	}

	for _, wc := range words {
		n := int(math.Round(float64(wc.Count) / float64(max) * float64(width)))
		if n < 1 {
			n = 1
		}
		if _, err := fmt.Fprintf(w, "%s  %s %d\n", PadToWidth(wc.Word, labelWidth), strings.Repeat("█", n), wc.Count); err != nil {
			return err
		}
	}
	return nil
}

// CloudTier buckets a word cloud weight into a size from 1 (small) to 3
// (large).
func CloudTier(weight float64) int {
	switch {
	case weight >= 0.75:
		return 3
	case weight >= 0.4:
		return 2
	default:
		return 1
	}
}

// WordCloud renders weighted words on one line, larger words upper-cased.
func WordCloud(weights []analysis.WordWeight) string {
	words := make([]string, len(weights))
	for i, ww := range weights {
		switch CloudTier(ww.Weight) {
		case 3:
			words[i] = strings.ToUpper(ww.Word)
		case 2:
			words[i] = ww.Word
		default:
			words[i] = "·" + ww.Word
		}
	}
	return strings.Join(words, "  ")
}

// SentimentBar draws score in [-1, 1] as a bar of width cells growing
// left (negative) or right (positive) from a center mark.
func SentimentBar(score float64, width int) string {
	if width < 3 {
		width = 3
	}
	if width%2 == 0 {
		width++
	}
	if math.IsNaN(score) {
		score = 0
	}
	score = math.Max(-1, math.Min(1, score))

	half := width / 2
	cells := []rune(strings.Repeat("·", width))
	cells[half] = '|'

	n := int(math.Round(math.Abs(score) * float64(half)))
	for i := 1; i <= n; i++ {
		if score > 0 {
			cells[half+i] = '█'
		} else {
			cells[half-i] = '█'
		}
	}
	return "[" + string(cells) + "]"
}

// Analysis writes the length, top words, word cloud and sentiment of a
// lyric analysis.
func Analysis(w io.Writer, result analysis.Result, topWords int) error {
	if _, err := fmt.Fprintf(w, "Length: %d words (%d distinct)\n", result.Length, result.Frequency.Len()); err != nil {
		return err
	}

	if topWords > 0 && result.Length > 0 {
		if _, err := fmt.Fprintf(w, "\nTop %d words:\n", topWords); err != nil {
			return err
		}
		if err := Bars(w, result.Frequency.MostFrequent(topWords), 30); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\nWord cloud: %s\n", WordCloud(result.Frequency.Weights(topWords))); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nSentiment: %s %+.2f (%s)\n",
		SentimentBar(result.Sentiment.Score, 21), result.Sentiment.Score, result.Sentiment.Label)
	return err
}
