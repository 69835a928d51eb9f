package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/osmansemir/mindvale-cli/internal/cli"
	"github.com/osmansemir/mindvale-cli/internal/config"
	"github.com/osmansemir/mindvale-cli/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewDevLogger(os.Stderr, level)

	app := cli.NewApp(cfg, log)
	app.Run(context.Background())
}
