package inventory

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/go-cli"

	"github.com/edgetap/iothub-go/app"
	"github.com/edgetap/iothub-go/pkg/inventory"
	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// DefaultPath is the snapshot database location when --db is not given.
func DefaultPath() string {
	if path := os.Getenv("IOTHUB_INVENTORY"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()

	if err != nil {
		return "inventory.db"
	}

	return filepath.Join(home, ".config", "iothub", "inventory.db")
}

// Sync pulls every device twin from the hub and reconciles the local
// snapshot against it.
func Sync(ctx context.Context, client *iothub.Client, path string) error {
	os.MkdirAll(filepath.Dir(path), 0755)

	store, err := inventory.New(path)

	if err != nil {
		return err
	}

	var twins []models.Twin

	fn := func() error {
		var err error

		twins, err = client.Twins.Query("SELECT * FROM devices", 0).All(ctx)

		return err
	}

	if err := cli.Run("Fetching twins...", fn); err != nil {
		return err
	}

	changes, err := store.Apply(ctx, twins)

	if err != nil {
		return err
	}

	cli.Infof("synced %d twins from %s", len(twins), client.Host())
	cli.Infof("added %d, updated %d, removed %d", len(changes.Added), len(changes.Updated), len(changes.Removed))

	return nil
}

// List prints the local snapshot. A tag filter of the form key=value
// narrows the result.
func List(ctx context.Context, path, tag string) error {
	store, err := inventory.New(path)

	if err != nil {
		return err
	}

	if tag != "" {
		key, value, _ := strings.Cut(tag, "=")

		devices, err := store.FindByTag(ctx, key, value)

		if err != nil {
			return err
		}

		return app.Print(devices)
	}

	var devices []inventory.Device

	options := &inventory.ListOptions{}

	for {
		page, err := store.List(ctx, options)

		if err != nil {
			return err
		}

		devices = append(devices, page.Items...)

		if page.Cursor == "" {
			break
		}

		options.Cursor = page.Cursor
	}

	return app.Print(devices)
}

// Stats prints snapshot counts.
func Stats(ctx context.Context, path string) error {
	store, err := inventory.New(path)

	if err != nil {
		return err
	}

	stats, err := store.Stats(ctx)

	if err != nil {
		return err
	}

	cli.Infof("devices:      %d", stats.Total)
	cli.Infof("enabled:      %d", stats.Enabled)
	cli.Infof("disabled:     %d", stats.Disabled)
	cli.Infof("connected:    %d", stats.Connected)
	cli.Infof("edge devices: %d", stats.Edge)

	return nil
}
