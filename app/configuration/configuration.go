package configuration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/adrianliechti/go-cli"

	"github.com/edgetap/iothub-go/app"
	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

func List(ctx context.Context, client *iothub.Client, top int) error {
	configurations, err := client.Configurations.List(ctx, top)

	if err != nil {
		return err
	}

	return app.Print(configurations)
}

func Get(ctx context.Context, client *iothub.Client, id string) error {
	configuration, err := client.Configurations.Get(ctx, id)

	if err != nil {
		return err
	}

	return app.Print(configuration)
}

// Apply pushes the configuration content in the given file onto one device.
func Apply(ctx context.Context, client *iothub.Client, deviceID, path string) error {
	data, err := os.ReadFile(path)

	if err != nil {
		return err
	}

	var content models.ConfigurationContent

	if err := json.Unmarshal(data, &content); err != nil {
		return fmt.Errorf("parse configuration content: %w", err)
	}

	if err := client.Devices.ApplyConfigurationContent(ctx, deviceID, &content); err != nil {
		return err
	}

	cli.Infof("applied %s to %s", path, deviceID)

	return nil
}
