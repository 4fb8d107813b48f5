package module

import (
	"context"
	"fmt"

	"github.com/adrianliechti/go-cli"

	"github.com/edgetap/iothub-go/app"
	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

func List(ctx context.Context, client *iothub.Client, deviceID string) error {
	modules, err := client.Modules.List(ctx, deviceID)

	if err != nil {
		return err
	}

	return app.Print(modules)
}

func Get(ctx context.Context, client *iothub.Client, deviceID, moduleID string) error {
	module, err := client.Modules.Get(ctx, deviceID, moduleID)

	if err != nil {
		return err
	}

	return app.Print(module)
}

func Create(ctx context.Context, client *iothub.Client, deviceID, moduleID, managedBy string) error {
	module := &models.Module{
		DeviceID: deviceID,
		ModuleID: moduleID,

		ManagedBy: managedBy,

		Authentication: &models.AuthenticationMechanism{
			Type: models.AuthenticationTypeSAS,
		},
	}

	created, err := client.Modules.CreateOrUpdate(ctx, module)

	if err != nil {
		return err
	}

	return app.Print(created)
}

func Delete(ctx context.Context, client *iothub.Client, deviceID, moduleID, etag string, force bool) error {
	if !force {
		ok, err := cli.Confirm(fmt.Sprintf("Delete module %q of device %q?", moduleID, deviceID), false)

		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}

	if err := client.Modules.Delete(ctx, deviceID, moduleID, etag); err != nil {
		return err
	}

	cli.Infof("deleted module %s/%s", deviceID, moduleID)

	return nil
}
