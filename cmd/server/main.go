package main

import (
	"log/slog"
	"os"

	"go-blog-admin/internal/app"
	"go-blog-admin/internal/logger"
)

func main() {
	slog.SetDefault(slog.New(logger.NewConsoleHandler(os.Stdout, slog.LevelInfo)))

	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
