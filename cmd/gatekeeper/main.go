package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qudata/gatekeeper/internal/cli"
	"github.com/qudata/gatekeeper/internal/clierror"
	"github.com/qudata/gatekeeper/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return clierror.ExitGeneral
	}

	logger := config.NewLogger(cfg, "gatekeeper")
	logger.Info("starting gatekeeper",
		"version", config.Version,
		"build_time", config.BuildTime,
		"scheme", cfg.Scheme,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A read from the terminal cannot observe ctx, so an interrupt during a
	// prompt ends the process here once in-flight work had a chance to unwind.
	go func() {
		<-ctx.Done()
		time.Sleep(500 * time.Millisecond)
		fmt.Fprintln(os.Stderr, "\n[*] Session interrupted by user.")
		os.Exit(clierror.ExitInterrupted)
	}()

	app := cli.NewApp(cfg, logger)
	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		cliErr := clierror.From(err)
		logger.Error("gatekeeper exited with error", "code", cliErr.Code, "err", err)
		if cliErr.Code == clierror.CodeInterrupted {
			fmt.Fprintln(os.Stderr, "\n[*] Session interrupted by user.")
		} else {
			fmt.Fprintln(os.Stderr, clierror.Format(cliErr))
		}
		return cliErr.ExitCode
	}

	logger.Info("gatekeeper stopped cleanly")
	return clierror.ExitSuccess
}
