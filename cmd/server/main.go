package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"impostor/internal/config"
)

//go:embed web/*
var webFS embed.FS

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	web, err := fs.Sub(webFS, "web")
	if err != nil {
		slog.Error("failed to get web subdirectory", "error", err)
		os.Exit(1)
	}

	cobra.CheckErr(newCmd(cfg, web).Execute())
}

func newLogger(cfg *config.Config) *slog.Logger {
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, logOpts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
