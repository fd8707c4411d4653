package main

import (
	"context"
	"os"
	"path/filepath"
	"todoapp/config"
	"todoapp/internal/client"
	"todoapp/internal/client/theme"
	"todoapp/internal/editor"
	"todoapp/internal/tui"
	"todoapp/shared/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

const (
	appDir          = "todoapp"
	preferencesFile = "preferences.toml"
	logFile         = "tui.log"
)

func main() {
	cfg := config.Get()

	closer, err := logger.InitFileLogger(pathOr(cfg.Client.LogFile, logFile))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open log file")
	}
	defer closer.Close()

	logger.SetLogLevel(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := theme.NewStore(pathOr(cfg.Client.PreferencesFile, preferencesFile), lipgloss.HasDarkBackground)
	list := client.NewListClient(client.NewHTTP(cfg))

	program := tea.NewProgram(tui.New(ctx, list, editor.New(), store), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("Terminal client stopped")
		os.Exit(1)
	}
}

// pathOr returns configured, or name inside the user config directory.
func pathOr(configured, name string) string {
	if configured != "" {
		return configured
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}

	return filepath.Join(dir, appDir, name)
}
