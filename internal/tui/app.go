package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/lyricist/internal/analysis"
	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/internal/explorer"
	"github.com/jfmyers9/lyricist/internal/render"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

// Pipeline is the subset of the explorer the UI drives.
type Pipeline interface {
	Discography(ctx context.Context, artistName string) (*explorer.DiscographyResult, error)
	Tracks(ctx context.Context, album discography.Album) ([]discography.Track, error)
	Song(ctx context.Context, artist, title string) *explorer.SongResult
}

// Config holds TUI configuration options
type Config struct {
	TopWords int // Number of words in the top words chart
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{TopWords: 10}
}

// App is the interactive discography explorer
type App struct {
	app      *tview.Application
	input    *tview.InputField
	albums   *tview.List
	tracks   *tview.List
	lyrics   *tview.TextView
	analysis *tview.TextView
	status   *tview.TextView

	config   Config
	pipeline Pipeline
	logger   zerolog.Logger

	// sel discards results of superseded selections
	sel explorer.Selection

	// Only touched from the UI goroutine
	artist     string
	albumList  []discography.Album
	trackList  []discography.Track
	focusCycle []tview.Primitive
	focusIndex int
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a new explorer UI
func New(pipeline Pipeline, cfg Config, logger zerolog.Logger) *App {
	if cfg.TopWords <= 0 {
		cfg.TopWords = DefaultConfig().TopWords
	}
	a := &App{
		app:      tview.NewApplication(),
		config:   cfg,
		pipeline: pipeline,
		logger:   logger.With().Str("component", "tui").Logger(),
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.input = tview.NewInputField().
		SetLabel(" Artist: ").
		SetFieldWidth(0)
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.searchArtist(a.input.GetText())
		}
	})

	a.albums = tview.NewList().ShowSecondaryText(true)
	a.albums.SetBorder(true).
		SetTitle(" Studio Albums ").
		SetTitleAlign(tview.AlignLeft)
	a.albums.SetSelectedFunc(func(i int, _, _ string, _ rune) {
		if i >= 0 && i < len(a.albumList) {
			a.selectAlbum(a.albumList[i])
		}
	})

	a.tracks = tview.NewList().ShowSecondaryText(false)
	a.tracks.SetBorder(true).
		SetTitle(" Tracks ").
		SetTitleAlign(tview.AlignLeft)
	a.tracks.SetSelectedFunc(func(i int, _, _ string, _ rune) {
		if i >= 0 && i < len(a.trackList) {
			a.selectTrack(a.trackList[i])
		}
	})

	a.lyrics = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	a.lyrics.SetBorder(true).
		SetTitle(" Lyrics ").
		SetTitleAlign(tview.AlignLeft)

	a.analysis = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	a.analysis.SetBorder(true).
		SetTitle(" Analysis ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(helpText)

	// Left column: albums over tracks
	// Right column: lyrics over analysis
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.albums, 0, 1, false).
		AddItem(a.tracks, 0, 1, false)

	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.lyrics, 0, 3, false).
		AddItem(a.analysis, a.config.TopWords+9, 0, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 2, false).
		AddItem(right, 0, 3, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.input, 1, 0, true).
		AddItem(body, 0, 1, false).
		AddItem(a.status, 1, 0, false)

	a.focusCycle = []tview.Primitive{a.input, a.albums, a.tracks, a.lyrics}

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true).SetFocus(a.input)
}

const helpText = "[gray]enter:select  tab:next pane  /:artist  q:quit[-]"

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		a.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		a.cycleFocus(-1)
		return nil
	}

	// Runes belong to the artist field while it has focus
	if a.app.GetFocus() == a.input {
		return event
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.Stop()
		return nil
	case '/':
		a.focus(0)
		return nil
	}
	return event
}

func (a *App) cycleFocus(step int) {
	n := len(a.focusCycle)
	a.focus(((a.focusIndex+step)%n + n) % n)
}

func (a *App) focus(i int) {
	a.focusIndex = i
	a.app.SetFocus(a.focusCycle[i])
}

// Run starts the UI. A non-empty artist is searched immediately.
func (a *App) Run(ctx context.Context, artist string) error {
	a.ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()
	defer a.sel.Close()

	if artist = strings.TrimSpace(artist); artist != "" {
		a.input.SetText(artist)
		a.searchArtist(artist)
	}

	go func() {
		<-a.ctx.Done()
		a.app.Stop()
	}()

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// searchArtist starts a discography lookup, superseding any earlier one.
// Must be called on the UI goroutine.
func (a *App) searchArtist(artist string) {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return
	}

	ticket := a.sel.Begin(a.ctx, explorer.StageArtist)
	a.artist = artist
	a.albumList, a.trackList = nil, nil
	a.albums.Clear()
	a.tracks.Clear()
	a.lyrics.Clear()
	a.analysis.Clear()
	a.setStatus(fmt.Sprintf("[yellow]Loading discography of %s...[-]", tview.Escape(artist)))

	go func() {
		result, err := a.pipeline.Discography(ticket.Context(), artist)
		a.app.QueueUpdateDraw(func() {
			if !ticket.Current() {
				return
			}
			a.showDiscography(result, err)
		})
	}()
}

func (a *App) showDiscography(result *explorer.DiscographyResult, err error) {
	if err != nil {
		if errors.Is(err, discography.ErrArtistNotFound) {
			a.setStatus(fmt.Sprintf("[red]Artist not found: %s[-]", tview.Escape(a.artist)))
		} else {
			a.logger.Error().Err(err).Msg("Discography lookup failed")
			a.setStatus(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
		}
		return
	}

	if msg := result.Message(); msg != "" {
		a.setStatus(fmt.Sprintf("[yellow]%s[-]", tview.Escape(msg)))
		return
	}

	a.albumList = result.Albums
	for _, album := range result.Albums {
		a.albums.AddItem(tview.Escape(album.Title), albumDetail(album), 0, nil)
	}
	a.setStatus(fmt.Sprintf("[green]%d studio albums[-]  %s", len(result.Albums), helpText))
	a.focus(1)
}

// selectAlbum starts a track listing, superseding earlier album and
// track work. Must be called on the UI goroutine.
func (a *App) selectAlbum(album discography.Album) {
	ticket := a.sel.Begin(a.ctx, explorer.StageAlbum)
	a.trackList = nil
	a.tracks.Clear()
	a.lyrics.Clear()
	a.analysis.Clear()
	a.tracks.SetTitle(fmt.Sprintf(" Tracks: %s ", tview.Escape(album.Title)))
	a.setStatus("[yellow]Loading tracks...[-]")

	go func() {
		tracks, err := a.pipeline.Tracks(ticket.Context(), album)
		a.app.QueueUpdateDraw(func() {
			if !ticket.Current() {
				return
			}
			if err != nil {
				a.logger.Error().Err(err).Str("album", album.Title).Msg("Track listing failed")
				a.setStatus(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
				return
			}
			a.trackList = tracks
			for _, t := range tracks {
				a.tracks.AddItem(fmt.Sprintf("%2d. %s  [gray]%s[-]", t.Position, tview.Escape(t.Name), render.Duration(t.Duration)), "", 0, nil)
			}
			a.setStatus(fmt.Sprintf("[green]%d tracks[-]  %s", len(tracks), helpText))
			a.focus(2)
		})
	}()
}

// selectTrack starts a lyrics lookup. Must be called on the UI goroutine.
func (a *App) selectTrack(track discography.Track) {
	ticket := a.sel.Begin(a.ctx, explorer.StageTrack)
	artist := a.artist
	a.lyrics.Clear()
	a.analysis.Clear()
	a.lyrics.SetTitle(fmt.Sprintf(" Lyrics: %s ", tview.Escape(track.Name)))
	a.setStatus("[yellow]Fetching lyrics...[-]")

	go func() {
		song := a.pipeline.Song(ticket.Context(), artist, track.Name)
		a.app.QueueUpdateDraw(func() {
			if !ticket.Current() {
				return
			}
			if msg := song.Message(); msg != "" {
				a.lyrics.SetText(fmt.Sprintf("\n[gray]%s[-]", tview.Escape(msg)))
				a.setStatus(helpText)
				return
			}
			a.lyrics.SetText(tview.Escape(song.Lyrics.Text())).ScrollToBeginning()
			_, _, width, _ := a.analysis.GetInnerRect()
			a.analysis.SetText(formatAnalysis(song.Analysis, a.config.TopWords, width))
			a.setStatus(helpText)
		})
	}()
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

func albumDetail(album discography.Album) string {
	var parts []string
	if album.ReleaseDate != "" {
		parts = append(parts, album.ReleaseDate)
	}
	if album.TotalTracks > 0 {
		parts = append(parts, fmt.Sprintf("%d tracks", album.TotalTracks))
	}
	return "[gray]" + strings.Join(parts, " · ") + "[-]"
}

// formatAnalysis renders an analysis with tview color tags.
func formatAnalysis(result *analysis.Result, topWords, width int) string {
	if result == nil {
		return ""
	}

	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[::b]Length[::-] %d words (%d distinct)\n\n", result.Length, result.Frequency.Len()))

	var bars bytes.Buffer
	_ = render.Bars(&bars, result.Frequency.MostFrequent(topWords), barWidth)
	sb.WriteString("[green]")
	sb.WriteString(tview.Escape(bars.String()))
	sb.WriteString("[-]\n")

	for i, ww := range result.Frequency.Weights(topWords) {
		if i > 0 {
			sb.WriteString(" ")
		}
		word := tview.Escape(ww.Word)
		switch render.CloudTier(ww.Weight) {
		case 3:
			sb.WriteString("[yellow::b]" + strings.ToUpper(word) + "[-:-:-]")
		case 2:
			sb.WriteString("[white]" + word + "[-]")
		default:
			sb.WriteString("[gray]" + word + "[-]")
		}
	}
	sb.WriteString("\n\n")

	s := result.Sentiment
	sb.WriteString(fmt.Sprintf("[::b]Sentiment[::-] [%s]%s %+.2f %s[-]",
		sentimentColor(s.Label), tview.Escape(render.SentimentBar(s.Score, 21)), s.Score, s.Label))

	return sb.String()
}

func sentimentColor(label analysis.Label) string {
	switch label {
	case analysis.Positive:
		return "green"
	case analysis.Negative:
		return "red"
	default:
		return "gray"
	}
}
