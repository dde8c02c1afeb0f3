package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lustless/lustless-client/internal/buildinfo"
	"github.com/lustless/lustless-client/internal/client/cli"
	"github.com/lustless/lustless-client/internal/client/config"
	"github.com/lustless/lustless-client/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
