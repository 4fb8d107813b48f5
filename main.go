package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgetap/iothub-go/app"
	"github.com/edgetap/iothub-go/app/configuration"
	"github.com/edgetap/iothub-go/app/device"
	"github.com/edgetap/iothub-go/app/docs"
	"github.com/edgetap/iothub-go/app/inventory"
	"github.com/edgetap/iothub-go/app/mcp"
	"github.com/edgetap/iothub-go/app/method"
	"github.com/edgetap/iothub-go/app/module"
	"github.com/edgetap/iothub-go/app/query"
	"github.com/edgetap/iothub-go/app/twin"
	"github.com/edgetap/iothub-go/pkg/cli"

	_ "github.com/joho/godotenv/autoload"
)

var version string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := initApp()

	if err := root.Run(ctx, os.Args); err != nil {
		cli.Fatal(err)
	}
}

func initApp() cli.Command {
	return cli.Command{
		Name:  "iothub",
		Usage: "IoT Hub CLI",

		Suggest: true,
		Version: version,

		HideHelpCommand: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "named profile from ~/.config/iothub/config.yaml",
			},
		},

		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},

		Commands: []*cli.Command{
			deviceCommand(),
			moduleCommand(),
			twinCommand(),
			methodCommand(),
			queryCommand(),
			configurationCommand(),
			inventoryCommand(),
			mcpCommand(),

			{
				Name:  "docs",
				Usage: "usage guide",

				HideHelp: true,

				Action: func(ctx context.Context, cmd *cli.Command) error {
					return docs.Run()
				},
			},
		},
	}
}

func deviceCommand() *cli.Command {
	return &cli.Command{
		Name:  "device",
		Usage: "manage device identities",

		HideHelpCommand: true,

		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list devices",

				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "maximum number of devices",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					client := app.MustClient(ctx, cmd.String("profile"))

					return device.List(ctx, client, int(cmd.Int("top")))
				},
			},

			{
				Name:  "get",
				Usage: "show a device identity",

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)

					if deviceID == "" {
						return errors.New("device id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return device.Get(ctx, client, deviceID)
				},
			},

			{
				Name:  "create",
				Usage: "register a device",

				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "edge",
						Usage: "register as an IoT Edge device",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)

					if deviceID == "" {
						return errors.New("device id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return device.Create(ctx, client, deviceID, cmd.Bool("edge"))
				},
			},

			{
				Name:  "delete",
				Usage: "remove a device",

				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "etag",
						Usage: "delete only when the identity matches this etag",
					},

					&cli.BoolFlag{
						Name:  "force",
						Usage: "skip confirmation",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)

					if deviceID == "" {
						return errors.New("device id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return device.Delete(ctx, client, deviceID, cmd.String("etag"), cmd.Bool("force"))
				},
			},

			{
				Name:  "purge",
				Usage: "drop the cloud-to-device message queue",

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)

					if deviceID == "" {
						return errors.New("device id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return device.Purge(ctx, client, deviceID)
				},
			},

			{
				Name:  "stats",
				Usage: "registry and connectivity counts",

				Action: func(ctx context.Context, cmd *cli.Command) error {
					client := app.MustClient(ctx, cmd.String("profile"))

					return device.Stats(ctx, client)
				},
			},
		},
	}
}

func moduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "module",
		Usage: "manage module identities",

		HideHelpCommand: true,

		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list modules of a device",

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)

					if deviceID == "" {
						return errors.New("device id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return module.List(ctx, client, deviceID)
				},
			},

			{
				Name:  "get",
				Usage: "show a module identity",

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)
					moduleID := cmd.Args().Get(1)

					if deviceID == "" || moduleID == "" {
						return errors.New("device id and module id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return module.Get(ctx, client, deviceID, moduleID)
				},
			},

			{
				Name:  "create",
				Usage: "register a module on a device",

				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "managed-by",
						Usage: "owning entity, e.g. iotEdge",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)
					moduleID := cmd.Args().Get(1)

					if deviceID == "" || moduleID == "" {
						return errors.New("device id and module id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return module.Create(ctx, client, deviceID, moduleID, cmd.String("managed-by"))
				},
			},

			{
				Name:  "delete",
				Usage: "remove a module",

				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "etag",
						Usage: "delete only when the identity matches this etag",
					},

					&cli.BoolFlag{
						Name:  "force",
						Usage: "skip confirmation",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)
					moduleID := cmd.Args().Get(1)

					if deviceID == "" || moduleID == "" {
						return errors.New("device id and module id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return module.Delete(ctx, client, deviceID, moduleID, cmd.String("etag"), cmd.Bool("force"))
				},
			},
		},
	}
}

func twinCommand() *cli.Command {
	return &cli.Command{
		Name:  "twin",
		Usage: "read and update twins",

		HideHelpCommand: true,

		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "show a device or module twin",

				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "module",
						Usage: "module id",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)

					if deviceID == "" {
						return errors.New("device id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return twin.Get(ctx, client, deviceID, cmd.String("module"))
				},
			},

			{
				Name:  "update",
				Usage: "patch twin tags or desired properties",

				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "module",
						Usage: "module id",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)
					patch := cmd.Args().Get(1)

					if deviceID == "" || patch == "" {
						return errors.New("device id and patch document required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return twin.Update(ctx, client, deviceID, cmd.String("module"), patch)
				},
			},
		},
	}
}

func methodCommand() *cli.Command {
	return &cli.Command{
		Name:  "method",
		Usage: "invoke direct methods",

		HideHelpCommand: true,

		Commands: []*cli.Command{
			{
				Name:  "invoke",
				Usage: "call a direct method on a device or module",

				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "module",
						Usage: "module id",
					},

					&cli.StringFlag{
						Name:  "payload",
						Usage: "json payload",
					},

					&cli.IntFlag{
						Name:  "timeout",
						Usage: "response timeout in seconds",

						Value: 30,
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)
					name := cmd.Args().Get(1)

					if deviceID == "" || name == "" {
						return errors.New("device id and method name required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return method.Invoke(ctx, client, deviceID, cmd.String("module"), name, cmd.String("payload"), int(cmd.Int("timeout")))
				},
			},
		},
	}
}

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "run a registry query",

		HideHelp: true,

		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "rows per page",
			},
		},

		Action: func(ctx context.Context, cmd *cli.Command) error {
			text := cmd.Args().Get(0)

			if text == "" {
				return errors.New("query text required")
			}

			client := app.MustClient(ctx, cmd.String("profile"))

			return query.Run(ctx, client, text, int(cmd.Int("page-size")))
		},
	}
}

func configurationCommand() *cli.Command {
	return &cli.Command{
		Name:  "configuration",
		Usage: "manage automatic device configurations",

		HideHelpCommand: true,

		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list configurations",

				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "maximum number of configurations",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					client := app.MustClient(ctx, cmd.String("profile"))

					return configuration.List(ctx, client, int(cmd.Int("top")))
				},
			},

			{
				Name:  "get",
				Usage: "show a configuration",

				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().Get(0)

					if id == "" {
						return errors.New("configuration id required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return configuration.Get(ctx, client, id)
				},
			},

			{
				Name:  "apply",
				Usage: "apply configuration content to a device",

				Action: func(ctx context.Context, cmd *cli.Command) error {
					deviceID := cmd.Args().Get(0)
					path := cmd.Args().Get(1)

					if deviceID == "" || path == "" {
						return errors.New("device id and content file required")
					}

					client := app.MustClient(ctx, cmd.String("profile"))

					return configuration.Apply(ctx, client, deviceID, path)
				},
			},
		},
	}
}

func inventoryCommand() *cli.Command {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "snapshot database path",
	}

	return &cli.Command{
		Name:  "inventory",
		Usage: "local fleet snapshot",

		HideHelpCommand: true,

		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "pull all twins into the local snapshot",

				Flags: []cli.Flag{dbFlag},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					client := app.MustClient(ctx, cmd.String("profile"))

					return inventory.Sync(ctx, client, inventoryPath(cmd))
				},
			},

			{
				Name:  "list",
				Usage: "list snapshot devices",

				Flags: []cli.Flag{
					dbFlag,

					&cli.StringFlag{
						Name:  "tag",
						Usage: "filter by tag, key=value",
					},
				},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					return inventory.List(ctx, inventoryPath(cmd), cmd.String("tag"))
				},
			},

			{
				Name:  "stats",
				Usage: "snapshot counts",

				Flags: []cli.Flag{dbFlag},

				Action: func(ctx context.Context, cmd *cli.Command) error {
					return inventory.Stats(ctx, inventoryPath(cmd))
				},
			},
		},
	}
}

func inventoryPath(cmd *cli.Command) string {
	if path := cmd.String("db"); path != "" {
		return path
	}

	return inventory.DefaultPath()
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve hub tools over MCP",

		HideHelp: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address",

				Value: "localhost:4200",
			},
		},

		Action: func(ctx context.Context, cmd *cli.Command) error {
			client := app.MustClient(ctx, cmd.String("profile"))

			return mcp.Run(ctx, client, cmd.String("addr"))
		},
	}
}
