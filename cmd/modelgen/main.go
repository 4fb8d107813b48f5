package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgetap/iothub-go/internal/generator"
	"github.com/edgetap/iothub-go/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.Command{
		Name:  "modelgen",
		Usage: "generate hub API models from a service description",

		HideHelpCommand: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "generator config file",

				Value: "modelgen.yaml",
			},
		},

		Action: func(ctx context.Context, cmd *cli.Command) error {
			config, err := generator.ParseConfig(cmd.String("config"))

			if err != nil {
				return err
			}

			return generator.New(config).Generate()
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		cli.Fatal(err)
	}
}
