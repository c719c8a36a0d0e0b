package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/supplykz/supplier-console/cli"
	"github.com/supplykz/supplier-console/console"
)

func main() {
	// Create a context that listens for interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(ctx.Err(), context.Canceled):
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		stop()
		os.Exit(130)
	case errors.Is(err, console.ErrCancelled):
		fmt.Fprintln(os.Stderr, "Cancelled")
		stop()
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}
