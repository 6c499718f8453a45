package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/app"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/config"
	"github.com/dayekim/devprep/internal/store"
)

// validateTimeout bounds the startup token validation so a slow
// backend cannot hang the launch.
const validateTimeout = 5 * time.Second

// runApp wires config, session, client, and store, then launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	session, client, err := buildSession(cfg)
	if err != nil {
		return err
	}

	if session.Token() != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), validateTimeout)
		err := session.Validate(ctx, client)
		cancel()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Stored session is no longer valid; please sign in again.")
		}
	}

	marks, err := store.Open(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("open read-marks store: %w", err)
	}
	defer func() { _ = marks.Close() }()

	return app.Run(app.Options{
		Client:  client,
		Session: session,
		Marks:   marks,
		Cfg:     cfg,
	})
}

// buildSession creates the token-backed session and an API client
// reading its token.
func buildSession(cfg *config.Config) (*auth.Session, *api.Client, error) {
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, nil, err
	}

	session := auth.NewSession(tokenPath)
	if err := session.Load(); err != nil {
		return nil, nil, err
	}

	opts := []api.Option{api.WithTimeout(cfg.API.GetTimeout())}
	if logger := debugLogger(); logger != nil {
		opts = append(opts, api.WithLogger(logger))
	}

	client := api.New(cfg.API.BaseURL, session.Token, opts...)
	return session, client, nil
}

// debugLogger opens the API debug log when DEVPREP_DEBUG=1. The TUI
// owns the terminal, so traces go to a file under the state dir.
func debugLogger() *log.Logger {
	if os.Getenv("DEVPREP_DEBUG") != "1" {
		return nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		stateHome = filepath.Join(home, ".local", "state")
	}

	dir := filepath.Join(stateHome, "devprep")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return log.New(f, "", log.LstdFlags)
}
