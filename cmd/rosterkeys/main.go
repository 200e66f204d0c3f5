// Package main is the entry point for the rosterkeys CLI.
//
// rosterkeys reads a Blackboard roster export and creates one spending-capped
// OpenRouter API key per student, writing the keys to a reconciliation CSV.
//
// For detailed usage information, run:
//
//	rosterkeys --help
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/rosterkeys/cmd/rosterkeys/commands"
	"github.com/imamik/rosterkeys/cmd/rosterkeys/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	commands.SetVersionInfo(version, commit, date)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		handlers.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
