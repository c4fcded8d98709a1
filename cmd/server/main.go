package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"nova-chat/internal/config"
	"nova-chat/internal/handlers"
	"nova-chat/internal/logging"
	"nova-chat/internal/router"
	"nova-chat/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info().Str("env", cfg.Env).Msg("starting Nova proxy")

	// ──── Step 2: Initialize Upstream Client ────
	var completer services.Completer
	var closers []func()
	switch cfg.UpstreamProvider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini client initialization failed")
		}
		closers = append(closers, gemini.Close)
		completer = gemini
	default:
		completer = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.DefaultModel)
	}
	logger.Info().
		Str("provider", cfg.UpstreamProvider).
		Str("default_model", cfg.DefaultModel).
		Msg("upstream client initialized")

	// ──── Step 3: Start HTTP Server ────
	completionHandler := handlers.NewCompletionHandler(completer, logger)
	r := router.New(logger, completionHandler, cfg.FrontendURL)

	// No WriteTimeout: upstream calls are not time-bounded.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info().Str("addr", server.Addr).Msgf("Nova proxy ready on http://localhost:%s/api/ai-response", cfg.Port)

	if err := serve(server, sigChan, logger, closers...); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// serve runs server until stop fires, then drains it. closers run once the server has stopped,
// on the error path too.
func serve(server *http.Server, stop <-chan os.Signal, logger zerolog.Logger, closers ...func()) error {
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	// Graceful shutdown
	shutdownDone := make(chan error, 1)
	go func() {
		if _, ok := <-stop; !ok {
			return
		}
		logger.Info().Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownDone <- server.Shutdown(ctx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return <-shutdownDone
}
