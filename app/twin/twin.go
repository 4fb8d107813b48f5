package twin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edgetap/iothub-go/app"
	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

func Get(ctx context.Context, client *iothub.Client, deviceID, moduleID string) error {
	var twin *models.Twin
	var err error

	if moduleID != "" {
		twin, err = client.Twins.GetModule(ctx, deviceID, moduleID)
	} else {
		twin, err = client.Twins.Get(ctx, deviceID)
	}

	if err != nil {
		return err
	}

	return app.Print(twin)
}

func Update(ctx context.Context, client *iothub.Client, deviceID, moduleID, patch string) error {
	var twin models.Twin

	if err := json.Unmarshal([]byte(patch), &twin); err != nil {
		return fmt.Errorf("parse twin patch: %w", err)
	}

	var updated *models.Twin
	var err error

	if moduleID != "" {
		updated, err = client.Twins.UpdateModule(ctx, deviceID, moduleID, &twin)
	} else {
		updated, err = client.Twins.Update(ctx, deviceID, &twin)
	}

	if err != nil {
		return err
	}

	return app.Print(updated)
}
