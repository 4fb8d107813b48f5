package device

import (
	"context"
	"fmt"

	"github.com/adrianliechti/go-cli"

	"github.com/edgetap/iothub-go/app"
	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

func List(ctx context.Context, client *iothub.Client, top int) error {
	devices, err := client.Devices.List(ctx, top)

	if err != nil {
		return err
	}

	return app.Print(devices)
}

func Get(ctx context.Context, client *iothub.Client, deviceID string) error {
	device, err := client.Devices.Get(ctx, deviceID)

	if err != nil {
		return err
	}

	return app.Print(device)
}

func Create(ctx context.Context, client *iothub.Client, deviceID string, edge bool) error {
	device := &models.Device{
		DeviceID: deviceID,
		Status:   models.DeviceStatusEnabled,

		Authentication: &models.AuthenticationMechanism{
			Type: models.AuthenticationTypeSAS,
		},
	}

	if edge {
		device.Capabilities = &models.DeviceCapabilities{IoTEdge: true}
	}

	created, err := client.Devices.CreateOrUpdate(ctx, device)

	if err != nil {
		return err
	}

	return app.Print(created)
}

func Delete(ctx context.Context, client *iothub.Client, deviceID, etag string, force bool) error {
	if !force {
		ok, err := cli.Confirm(fmt.Sprintf("Delete device %q?", deviceID), false)

		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}

	if err := client.Devices.Delete(ctx, deviceID, etag); err != nil {
		return err
	}

	cli.Infof("deleted device %s", deviceID)

	return nil
}

func Purge(ctx context.Context, client *iothub.Client, deviceID string) error {
	result, err := client.Devices.PurgeMessageQueue(ctx, deviceID)

	if err != nil {
		return err
	}

	cli.Infof("purged %d queued messages from %s", result.TotalMessagesPurged, result.DeviceID)

	return nil
}

func Stats(ctx context.Context, client *iothub.Client) error {
	registry, err := client.Statistics.Devices(ctx)

	if err != nil {
		return err
	}

	service, err := client.Statistics.Service(ctx)

	if err != nil {
		return err
	}

	cli.Infof("total devices:     %d", registry.TotalDeviceCount)
	cli.Infof("enabled devices:   %d", registry.EnabledDeviceCount)
	cli.Infof("disabled devices:  %d", registry.DisabledDeviceCount)
	cli.Infof("connected devices: %d", service.ConnectedDeviceCount)

	return nil
}
