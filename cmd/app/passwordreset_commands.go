package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/addislabs/placement/cmd/app/commands"
	"github.com/addislabs/placement/internal/app"
	"github.com/addislabs/placement/internal/config"
)

func getPasswordResetCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-expired-resets",
			Usage: "Delete expired password resets older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete password resets that expired more than this many days ago",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many resets would be deleted without deleting",
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
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				resetUseCase, err := container.ResetUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredResets(
					ctx,
					resetUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
