package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/campus-dining-service/internal/config"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "campus-dining-service",
		Version: appVersion,
	})
	if err := config.LoadDotEnv(""); err != nil {
		logger.Warn("failed to load .env file", "error", err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		return err
	}
	if err := srv.Run(ctx); err != nil {
		logger.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
