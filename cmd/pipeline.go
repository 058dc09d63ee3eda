package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jfmyers9/lyricist/internal/analysis"
	"github.com/jfmyers9/lyricist/internal/catalog"
	"github.com/jfmyers9/lyricist/internal/config"
	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/internal/explorer"
	"github.com/jfmyers9/lyricist/internal/lyrics"
	"github.com/jfmyers9/lyricist/internal/reference"
	"github.com/jfmyers9/lyricist/pkg/spotify"
	"github.com/jfmyers9/lyricist/pkg/wikipedia"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// loadConfig loads configuration and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if requestTimeout > 0 {
		cfg.RequestTimeout = requestTimeout
	}
	if matchMode != "" {
		if _, err := discography.ParseMatchMode(matchMode); err != nil {
			return nil, err
		}
		cfg.MatchMode = matchMode
	}

	return cfg, nil
}

// tokenSource builds the client-credentials token source for Spotify.
func tokenSource(ctx context.Context, cfg *config.Config) oauth2.TokenSource {
	creds := &clientcredentials.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenURL:     cfg.Spotify.TokenURL,
	}
	return creds.TokenSource(ctx)
}

// newExplorer wires the pipeline. With withCatalog false no Spotify
// credentials are needed and only lyric lookups work.
func newExplorer(ctx context.Context, cfg *config.Config, logger zerolog.Logger, withCatalog bool) (*explorer.Explorer, error) {
	mode, err := discography.ParseMatchMode(cfg.MatchMode)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	opts := explorer.Options{
		Lyrics: lyrics.New(lyrics.Config{
			BaseURL:    cfg.Lyrics.BaseURL,
			HTTPClient: httpClient,
			Timeout:    cfg.RequestTimeout,
			UserAgent:  cfg.UserAgent,
		}, logger),
		Analyzer:  analysis.Analyzer{Scorer: analysis.LexiconScorer{}},
		Timeout:   cfg.RequestTimeout,
		MatchMode: mode,
		Logger:    logger,
	}

	if withCatalog {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		sp, err := spotify.NewClient(spotify.Config{
			TokenSource: tokenSource(ctx, cfg),
			HTTPClient:  httpClient,
			BaseURL:     cfg.Spotify.BaseURL,
			Market:      cfg.Spotify.Market,
			Logger:      debugLogger{logger: logger},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Spotify client: %w", err)
		}

		wiki, err := wikipedia.NewClient(wikipedia.Config{
			HTTPClient:        httpClient,
			APIURL:            cfg.Wikipedia.APIURL,
			WikiURL:           cfg.Wikipedia.WikiURL,
			UserAgent:         cfg.UserAgent,
			RequestsPerSecond: cfg.Wikipedia.RequestsPerSecond,
			Logger:            debugLogger{logger: logger},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Wikipedia client: %w", err)
		}

		opts.Catalog = catalog.New(sp, logger)
		opts.Reference = reference.New(wiki, logger)
	}

	return explorer.New(opts)
}
