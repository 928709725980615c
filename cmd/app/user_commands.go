package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/addislabs/placement/cmd/app/commands"
	"github.com/addislabs/placement/internal/app"
	"github.com/addislabs/placement/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-admin",
			Usage: "Create a new administrator account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email address for the admin account",
				},
				&cli.StringFlag{
					Name:     "phone",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Phone number in E.164 format (e.g., +971501234567)",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"w"},
					Required: true,
					Usage:    "Password for the admin account",
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

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAdmin(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("email"),
					cmd.String("phone"),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
	}
}
