// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/crypto-api/cmd/app/commands"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func getCommands(version string) []*cli.Command {
	server := &cli.Command{
		Name:  "server",
		Usage: "Start the API server (and the metrics server when enabled)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return commands.RunServer(ctx, version)
		},
	}

	return append([]*cli.Command{server}, getCryptoCommands()...)
}

func main() {
	cmd := &cli.Command{
		Name:     "crypto-api",
		Usage:    "Authenticated encryption and password hashing service",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
