package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/magielabs/companion/internal/companion/cli"
	"github.com/magielabs/companion/internal/companion/config"
	"github.com/magielabs/companion/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
