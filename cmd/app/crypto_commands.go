package main

import (
	"context"
	"crypto/rand"

	"github.com/urfave/cli/v3"

	"github.com/allisson/crypto-api/cmd/app/commands"
	"github.com/allisson/crypto-api/internal/app"
	"github.com/allisson/crypto-api/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "Password to process (read from stdin when omitted; prefer stdin to keep it out of shell history)",
	}
}

func getCryptoCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-key",
			Usage: "Generate a new 256-bit ENCRYPTION_KEY",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateKey(rand.Reader, commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
		{
			Name:  "hash-password",
			Usage: "Derive an Argon2id hash of a password",
			Flags: []cli.Flag{
				passwordFlag(),
				&cli.Uint32Flag{
					Name:  "memory",
					Usage: "Memory cost in KiB (defaults to ARGON2_MEMORY_KIB)",
				},
				&cli.Uint32Flag{
					Name:  "iterations",
					Usage: "Time cost (defaults to ARGON2_ITERATIONS)",
				},
				&cli.Uint8Flag{
					Name:  "parallelism",
					Usage: "Number of lanes (defaults to ARGON2_PARALLELISM)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				hasher, err := container.Hasher()
				if err != nil {
					return err
				}

				params := container.HashParams()
				if cmd.IsSet("memory") {
					params.Memory = cmd.Uint32("memory")
				}
				if cmd.IsSet("iterations") {
					params.Iterations = cmd.Uint32("iterations")
				}
				if cmd.IsSet("parallelism") {
					params.Parallelism = cmd.Uint8("parallelism")
				}

				return commands.RunHashPassword(
					hasher,
					&params,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-password",
			Usage: "Check a password against an Argon2id hash (exits non-zero on mismatch)",
			Flags: []cli.Flag{
				passwordFlag(),
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "Encoded hash, e.g. $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				hasher, err := container.Hasher()
				if err != nil {
					return err
				}

				return commands.RunVerifyPassword(
					hasher,
					commands.DefaultIO(),
					cmd.String("password"),
					cmd.String("hash"),
					cmd.String("format"),
				)
			},
		},
	}
}
