package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/alerts"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/api"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/centro"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/config"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/handlers"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/monitor"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/store"
)

func main() {
	cfg := config.Load()

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	// Token issuance: delegate to hashd when configured, otherwise issue
	// in-process.
	var issuer centro.TokenIssuer = centro.LocalIssuer{}
	if cfg.HashServiceURL != "" {
		issuer = centro.NewHTTPIssuer(cfg.HashServiceURL)
		logger.Info().Str("url", cfg.HashServiceURL).Msg("using external hash service")
	}

	client := centro.NewClient(
		cfg.PlatformURL,
		cfg.AccountEmail,
		cfg.AccountPassword,
		cfg.AccountSecret,
		cfg.ClientToken,
		issuer,
	)

	var notifier alerts.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := alerts.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram bot initialization failed")
		}
		notifier = tg
		logger.Info().Int64("chat_id", cfg.TelegramChatID).Msg("telegram alerts enabled")
	} else {
		notifier = alerts.NopNotifier{}
		logger.Warn().Msg("telegram not configured, alerts are log-only")
	}

	st := store.New()
	alertLog := alerts.NewLog(notifier, logger)

	poller := monitor.NewPoller(client, st, alertLog, logger, cfg.PollInterval, cfg.RecheckInterval)

	pollCtx, stopPolling := context.WithCancel(context.Background())
	go poller.Run(pollCtx)

	h := handlers.NewHandler(client, st, alertLog, logger)
	router := api.NewDashboardRouter(h, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Dur("poll_interval", cfg.PollInterval).
			Msg("starting chatter monitor")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	stopPolling()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
