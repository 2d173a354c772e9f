package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"soundhive/internal/session"
	"soundhive/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var store session.Store
	if home, err := os.UserHomeDir(); err == nil {
		if fs, err := session.NewFileStore(filepath.Join(home, ".soundhive", "session.json")); err == nil {
			store = fs
		}
	}
	if store == nil {
		logger.Warn("session file unavailable, sign-in will not persist")
		store = session.NewMemStore()
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Store:  store,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "soundhive",
		Usage:    "Music catalog client, server & mood-based player",
		Version:  "0.5.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
