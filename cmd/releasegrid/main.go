package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/releasegrid/internal/cli"
)

// main is the entrypoint for the releasegrid application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if exitErr := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); exitErr != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
		os.Exit(exitErr.Code)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) *cli.ExitError {
	return cli.Execute(ctx, outW, errW, args)
}
