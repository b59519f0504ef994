package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/parkspot/parkspot/internal/api"
	"github.com/parkspot/parkspot/internal/auth"
	"github.com/parkspot/parkspot/internal/config"
	"github.com/parkspot/parkspot/internal/location"
	"github.com/parkspot/parkspot/internal/logger"
	"github.com/parkspot/parkspot/internal/session"
	"github.com/parkspot/parkspot/internal/tui"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "auth" {
		_ = godotenv.Load()
		if err := runAuth(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runAuth manages keychain credentials outside the interactive screen, so
// the environment variables only need to be set once.
func runAuth(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: parkspot auth <store|clear>")
	}

	switch args[0] {
	case "store":
		creds := auth.GetCredentialsFromEnv()
		if !creds.IsValid() {
			return fmt.Errorf("set %s and %s before storing", auth.EnvProjectURL, auth.EnvAnonKey)
		}
		if err := auth.SaveCredentials(creds); err != nil {
			return fmt.Errorf("failed to store credentials: %w", err)
		}
		fmt.Println("Credentials stored in the system keychain.")
		return nil

	case "clear":
		if err := auth.DeleteCredentials(); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		fmt.Println("Credentials removed from the system keychain.")
		return nil
	}

	return fmt.Errorf("unknown auth command %q", args[0])
}

func run() error {
	// A .env in the working directory is a development convenience; a missing
	// file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(stateDir())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	creds, err := auth.GetCredentials()
	if err != nil {
		return fmt.Errorf("%w: set %s and %s, or store them in the keychain",
			err, auth.EnvProjectURL, auth.EnvAnonKey)
	}

	client := api.NewClientFromCredentials(*creds, api.WithLogger(log))
	store := session.New(cfg.SessionDir)
	locator := location.NewHTTPLocator(cfg.GeolocateURL, cfg.GeolocateTimeout)
	resolver := location.NewResolver(locator, store, cfg.Fallback(), log)

	app := tui.NewApp(client, resolver, store, cfg.Banner, nil, log).
		WithMapZoom(cfg.MapZoom)

	// All-motion tracking so panel drags see movement between press and
	// release.
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

func stateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "parkspot")
	}
	return "."
}
