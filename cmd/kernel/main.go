package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/bootkernel/internal/app"
	"github.com/specialistvlad/bootkernel/internal/cli"
)

// main is the entrypoint for the kernel binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	cfg, err := app.LoadConfig(".env")
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	a, err := app.NewApp(outW, cfg)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	return cli.Execute(ctx, a, args, outW)
}
