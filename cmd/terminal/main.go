package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pos-terminal/internal/api"
	"pos-terminal/internal/auth"
	"pos-terminal/internal/checkout"
	"pos-terminal/internal/config"
	"pos-terminal/internal/logger"
	"pos-terminal/internal/metering"
	"pos-terminal/internal/resources"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	tokens := auth.NewTokenStore(cfg.AuthToken)
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, tokens)

	engine := metering.NewEngine()
	defer engine.StopAll()

	store := resources.NewStore(engine, func(r metering.DisplayReading) {
		logger.L().Debug("session tick",
			zap.String("session_id", r.SessionID),
			zap.String("elapsed", r.Formatted),
			zap.Float64("accrued", metering.RoundDisplay(r.Amount)),
		)
	})

	poller := resources.NewPoller(client, store, cfg.PollInterval)
	co := checkout.New(client, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go poller.Run(ctx)

	logger.L().Info("pos terminal running",
		zap.String("backend", cfg.APIBaseURL),
		zap.String("terminal", cfg.TerminalID),
		zap.Duration("poll_interval", cfg.PollInterval),
	)

	// Ctrl-C works even while the prompt is waiting on stdin.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
		logger.L().Info("shutting down")
		logger.Sync()
		os.Exit(0)
	}()

	newRepl(client, store, poller, co).run(ctx)
}
