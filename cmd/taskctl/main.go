// Package main is the entry point for taskctl, the command-line client
// for the task API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskify-api/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCommand().Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
