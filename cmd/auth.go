package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/lyricist/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure Spotify API credentials",
	Long: `Configure the Spotify credentials used to look up artists and albums.

This command will guide you through the setup:
1. You'll be prompted to enter your Spotify client ID and secret
2. The credentials are checked by requesting an access token
3. On success they are saved to your config file

You can create an app and get credentials from:
https://developer.spotify.com/dashboard`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	// Load existing config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Spotify Authentication")
	fmt.Fprintln(out, "======================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "You can get credentials from: https://developer.spotify.com/dashboard")
	fmt.Fprintf(out, "Credentials are stored in %s\n", filepath.Join(config.GetConfigDir(), "config.yaml"))
	fmt.Fprintln(out)

	// Check if we already have credentials
	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		fmt.Fprintf(out, "Found existing credentials.\n")
		fmt.Fprintf(out, "Client ID: %s\n", cfg.Spotify.ClientID)
		fmt.Fprint(out, "\nUse existing credentials? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			cfg.Spotify.ClientID = ""
			cfg.Spotify.ClientSecret = ""
		}
	}

	if cfg.Spotify.ClientID == "" {
		fmt.Fprint(out, "Enter your Spotify Client ID: ")
		id, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client ID: %w", err)
		}
		cfg.Spotify.ClientID = strings.TrimSpace(id)
	}

	if cfg.Spotify.ClientSecret == "" {
		fmt.Fprint(out, "Enter your Spotify Client Secret: ")
		secret, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
		cfg.Spotify.ClientSecret = strings.TrimSpace(secret)
	}

	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return fmt.Errorf("client ID and secret are required")
	}

	fmt.Fprintln(out, "\nChecking credentials...")
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.RequestTimeout})

	if _, err := tokenSource(ctx, cfg).Token(); err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}

	path, err := config.SaveCredentials(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n✓ Authentication successful!\n")
	fmt.Fprintf(out, "✓ Credentials saved to %s\n", path)
	fmt.Fprintln(out, "\nYou can now use 'lyricist albums <artist>' or 'lyricist explore'.")

	if _, err := os.Stat(".env"); err == nil {
		fmt.Fprintln(out, "Note: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET in .env take precedence.")
	}

	return nil
}
