package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/giftkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/giftkeeper/internal/client/cli"
	"github.com/dmitrijs2005/giftkeeper/internal/client/config"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

// run returns the process exit code. Deferred cleanup, the log file
// included, has finished by the time it returns.
func run(stdout, stderr io.Writer) int {

	buildinfo.PrintBuildData(stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var w io.Writer = stderr
	if cfg.LogFile != "" {
		fw := logging.NewFileWriter(cfg.LogFile)
		defer fw.Close()
		w = fw
	}
	logger := logging.New(w, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		return 1
	}

	app.Run(ctx)
	return 0
}
