// Command viewmenu edits one book's view settings from a terminal. Changes
// land in the same settings file the reader watches, and can also be pushed
// to a remote renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"read-frame/pkg/config"
	"read-frame/pkg/logging"
	"read-frame/pkg/renderer"
	"read-frame/pkg/viewsettings"
)

func main() {
	cfg, cfgErr := config.Load()

	var (
		bookKey  = flag.String("book", "", "Book key to edit")
		settings = flag.String("settings", cfg.SettingsPath, "Path to the view settings file")
		remote   = flag.String("remote", cfg.RemoteRendererURL, "Remote renderer websocket URL (optional)")
		logFile  = flag.String("log", "", "Write logs to this file (optional)")
	)
	flag.Parse()

	if *bookKey == "" {
		fmt.Fprintln(os.Stderr, "Usage: viewmenu -book <key> [-settings path] [-remote ws://host/path] [-log file]")
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file
	if *logFile != "" {
		logger, err := logging.New(cfg.LogLevel, *logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		logging.SetLogger(logger)
	}
	if cfgErr != nil {
		logging.Logger().Warn("failed to load config, using defaults", zap.Error(cfgErr))
	}

	if err := run(*bookKey, *settings, *remote); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(bookKey, settingsPath, remoteURL string) error {
	store := viewsettings.NewFileStore(settingsPath)
	renderers := renderer.NewRegistry()

	if remoteURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		h, err := renderer.DialRemote(ctx, remoteURL, bookKey)
		cancel()
		if err != nil {
			return fmt.Errorf("connect remote renderer: %w", err)
		}
		defer h.Close()
		renderers.Register(bookKey, h)
	}

	p := tea.NewProgram(newModel(bookKey, store, renderers), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
