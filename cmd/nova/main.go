package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"nova-chat/internal/chat"
	"nova-chat/internal/client"
	"nova-chat/internal/config"
	"nova-chat/internal/database"
	"nova-chat/internal/logging"
	"nova-chat/internal/preferences"
	"nova-chat/internal/theme"
	"nova-chat/internal/ui"
)

func main() {
	prompt := flag.String("p", "", "send one prompt, print the reply and exit")
	flag.Parse()

	// ──── Step 1: Load Environment Variables ────
	cfg := config.LoadClient()

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := logging.NewWithWriter(cfg.LogLevel, logFile)

	// ──── Step 2: Initialize Preference Storage ────
	store := openStore(cfg, logger)

	// ──── Step 3: Build Controller ────
	ctrl := chat.NewController(chat.NewState(), chat.Deps{
		Proxy:       client.NewProxyClient(cfg.ProxyURL, time.Duration(cfg.ProxyTimeout)*time.Second),
		Clipboard:   chat.SystemClipboard{},
		Theme:       theme.NewManager(store, nil),
		DownloadDir: cfg.DownloadDir,
		Logger:      logger,
	})

	ctx := context.Background()
	if err := ctrl.LoadTheme(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to persist theme")
	}

	if *prompt != "" {
		ctrl.Submit(ctx, *prompt)
		fmt.Println(ctrl.State().Response)
		return
	}

	// ──── Step 4: Run Terminal UI ────
	p := tea.NewProgram(ui.New(ctx, ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running nova: %v\n", err)
		os.Exit(1)
	}
}

// openStore prefers Redis when configured and falls back to the TOML file.
func openStore(cfg *config.ClientConfig, logger zerolog.Logger) preferences.Store {
	if cfg.PrefsRedis != "" {
		rdb, err := database.NewRedisClient(cfg.PrefsRedis)
		if err == nil {
			logger.Info().Str("profile", cfg.Profile).Msg("using redis preference store")
			return preferences.NewRedisStore(rdb, cfg.Profile)
		}
		logger.Warn().Err(err).Msg("redis unavailable, using preference file")
	}
	return preferences.NewFileStore(cfg.PrefsPath)
}
