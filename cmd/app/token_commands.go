package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/syter/media/cmd/app/commands"
	"github.com/syter/media/internal/app"
	"github.com/syter/media/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-token",
			Usage: "Create a new authorization token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Unique token name",
				},
				&cli.DurationFlag{
					Name:    "expires-in",
					Aliases: []string{"e"},
					Usage:   "Token lifetime (e.g. 720h); omit for a non-expiring token",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg, cmd.Root().Version)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				var expiresIn time.Duration
				if cmd.IsSet("expires-in") {
					expiresIn = cmd.Duration("expires-in")
				}

				return commands.RunCreateToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					expiresIn,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "deactivate-token",
			Usage: "Permanently deactivate an authorization token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Token string to deactivate",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg, cmd.Root().Version)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeactivateToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
				)
			},
		},
	}
}
