package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"AuthorWatch/internal/app"
	"AuthorWatch/internal/config"
	"AuthorWatch/internal/logging"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

func main() {
	// The real environment always wins over .env.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitConfig
	}

	logger := logging.NewWithWriter(stdout, cfg.Logging.Level)

	application, err := app.New(cfg, logger, app.Options{})
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitConfig
	}

	err = application.Run(ctx)
	if ctx.Err() != nil {
		fmt.Fprintln(stdout, "\nInterrupt detected.")
		fmt.Fprintln(stdout, "Exiting...")
		return exitOK
	}
	if err != nil {
		logger.Error("application stopped", "error", err)
		return exitFailed
	}
	return exitOK
}
