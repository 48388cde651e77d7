package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"task-manager/internal/cli"
)

func main() {
	// Interrupts cancel in-flight requests and stop `tm serve` gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.NewErrorHandler().HandleSimple(err))
		stop()
		os.Exit(1)
	}
}
