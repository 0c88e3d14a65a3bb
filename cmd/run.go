package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"essaybot/internal/api"
	"essaybot/internal/bot"
	"essaybot/internal/config"
	"essaybot/internal/imaging"
	"essaybot/internal/publisher"
	"essaybot/pkg/logger"
	"essaybot/pkg/telegram/botapi"
)

func setupServer(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	server := api.NewServer(api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting debug webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start debug webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping debug webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop debug webserver", zap.Error(err))
		}
	}
}

func runCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Starts the Telegram bot and the debug webserver",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			if cfg.Telegram.Token == "" {
				logger.Fatal(ctx, "telegram token is not configured, set TELEGRAM_BOT_TOKEN")
			}
			if len(cfg.Telegram.AllowedUsers) == 0 {
				logger.Warn(ctx, "allowlist is empty, every incoming message will be rejected")
			}

			stopWebserver := setupServer(ctx, cfg)

			gh := getGitHub(ctx, cfg)
			pub := publisher.New(gh, publisher.NewOptions(cfg))

			// the client timeout must exceed the long-poll window or every
			// getUpdates call gets cut short; the margin covers slow sends
			pollClient := &http.Client{
				Timeout: time.Duration(cfg.Telegram.PollTimeout+10) * time.Second,
			}
			tg := botapi.New(pollClient, botapi.Options{
				BaseURL:     cfg.Telegram.APIBase,
				Token:       cfg.Telegram.Token,
				PollTimeout: cfg.Telegram.PollTimeout,
			})

			processor := imaging.New(imaging.Options{
				MaxWidth:             cfg.Imaging.MaxWidth,
				MaxHeight:            cfg.Imaging.MaxHeight,
				Quality:              cfg.Imaging.Quality,
				TargetSize:           cfg.Imaging.TargetSize,
				CompressionThreshold: cfg.Imaging.CompressionThreshold,
			})

			b := bot.New(tg, pub, processor, bot.NewOptions(cfg))
			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(ctx, "bot stopped", zap.Error(err))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			logger.Info(ctx, "waiting for in-flight publishes...")
			if err := b.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "shutdown timed out with handlers still running", zap.Error(err))
			}

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
