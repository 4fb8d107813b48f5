package mcp

import (
	"context"

	"github.com/adrianliechti/go-cli"

	"github.com/edgetap/iothub-go/pkg/bridge"
	"github.com/edgetap/iothub-go/pkg/iothub"
)

func Run(ctx context.Context, client *iothub.Client, addr string) error {
	cli.Info()
	cli.Info("MCP bridge for " + client.Host())
	cli.Info()

	for _, tool := range bridge.Tools(client) {
		println("🛠️ " + tool.Name)
	}

	cli.Info()
	cli.Infof("listening on %s", addr)

	return bridge.Run(ctx, client, addr)
}
