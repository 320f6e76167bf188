package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

var colorError = color.New(color.FgRed, color.Bold)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		colorError.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
