package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Spotify Web API access
	Spotify SpotifyConfig

	// Wikipedia endpoints and request pacing
	Wikipedia WikipediaConfig

	// lyrics.ovh endpoint
	Lyrics LyricsConfig

	// Timeout applied to each remote call
	// Default: 10s
	RequestTimeout time.Duration

	// Number of words in the top words chart
	// Default: 10
	TopWords int

	// Album title matching: "exact" or "edition-insensitive"
	// Default: "exact"
	MatchMode string

	// User-Agent sent to Wikipedia and lyrics.ovh
	UserAgent string
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
	BaseURL      string
	TokenURL     string
}

// WikipediaConfig holds Wikipedia specific configuration
type WikipediaConfig struct {
	APIURL            string
	WikiURL           string
	RequestsPerSecond float64
}

// LyricsConfig holds lyrics.ovh specific configuration
type LyricsConfig struct {
	BaseURL string
}

// Load reads configuration from file, .env files and environment
func Load() (*Config, error) {
	// .env.local wins over .env; neither overrides the real environment
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")

	v.SetDefault("spotify.base_url", "https://api.spotify.com/v1")
	v.SetDefault("spotify.token_url", "https://accounts.spotify.com/api/token")
	v.SetDefault("wikipedia.api_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("wikipedia.wiki_url", "https://en.wikipedia.org/wiki")
	v.SetDefault("wikipedia.requests_per_second", 5)
	v.SetDefault("lyrics.base_url", "https://api.lyrics.ovh")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("top_words", 10)
	v.SetDefault("match_mode", "exact")
	v.SetDefault("user_agent", "lyricist/1.0 (https://github.com/jfmyers9/lyricist)")

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read from environment variables, e.g. LYRICIST_SPOTIFY_MARKET
	v.SetEnvPrefix("LYRICIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional unprefixed credential variables are honored too
	_ = v.BindEnv("spotify.client_id", "LYRICIST_SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_ID")
	_ = v.BindEnv("spotify.client_secret", "LYRICIST_SPOTIFY_CLIENT_SECRET", "SPOTIFY_CLIENT_SECRET")

	cfg := &Config{
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			Market:       v.GetString("spotify.market"),
			BaseURL:      v.GetString("spotify.base_url"),
			TokenURL:     v.GetString("spotify.token_url"),
		},
		Wikipedia: WikipediaConfig{
			APIURL:            v.GetString("wikipedia.api_url"),
			WikiURL:           v.GetString("wikipedia.wiki_url"),
			RequestsPerSecond: v.GetFloat64("wikipedia.requests_per_second"),
		},
		Lyrics: LyricsConfig{
			BaseURL: v.GetString("lyrics.base_url"),
		},
		RequestTimeout: v.GetDuration("request_timeout"),
		TopWords:       v.GetInt("top_words"),
		MatchMode:      v.GetString("match_mode"),
		UserAgent:      v.GetString("user_agent"),
	}

	if err := cfg.validateGeneral(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateGeneral() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.TopWords < 0 {
		return fmt.Errorf("top_words must not be negative, got %d", c.TopWords)
	}
	if _, err := discography.ParseMatchMode(c.MatchMode); err != nil {
		return err
	}
	return nil
}

// Validate checks that the configuration is complete enough to reach the
// catalog.
func (c *Config) Validate() error {
	if err := c.validateGeneral(); err != nil {
		return err
	}
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return fmt.Errorf("Spotify credentials not configured. Run 'lyricist auth' or set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}
	return nil
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", "lyricist")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// SaveCredentials writes the Spotify credentials to the config file,
// keeping any other settings already in it.
func SaveCredentials(clientID, clientSecret string) (string, error) {
	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := filepath.Join(configDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configFile)
	if _, err := os.Stat(configFile); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
	}

	v.Set("spotify.client_id", clientID)
	v.Set("spotify.client_secret", clientSecret)

	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return configFile, nil
}
