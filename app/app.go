package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/edgetap/iothub-go/pkg/cli"
	"github.com/edgetap/iothub-go/pkg/iothub"
)

// MustClient builds the hub client or exits. Resolution order: the
// named profile, IOTHUB_CONNECTION_STRING, then IOTHUB_HOST with the
// ambient azure credential.
func MustClient(ctx context.Context, profile string) *iothub.Client {
	client, err := Client(ctx, profile)

	if err != nil {
		cli.Fatal(err)
	}

	return client
}

func Client(ctx context.Context, profile string) (*iothub.Client, error) {
	var options []iothub.Option

	if timeout, err := time.ParseDuration(os.Getenv("IOTHUB_TIMEOUT")); err == nil && timeout > 0 {
		options = append(options, iothub.WithClient(&http.Client{Timeout: timeout}))
	}

	if profile == "" {
		profile = os.Getenv("IOTHUB_PROFILE")
	}

	if profile != "" {
		return profileClient(profile, options)
	}

	if value := os.Getenv("IOTHUB_CONNECTION_STRING"); value != "" {
		return iothub.NewFromConnectionString(value, options...)
	}

	if host := os.Getenv("IOTHUB_HOST"); host != "" {
		credential, err := iothub.NewDefaultCredential()

		if err != nil {
			return nil, err
		}

		return iothub.New(host, credential, options...)
	}

	return nil, errors.New("no hub configured: set IOTHUB_CONNECTION_STRING, IOTHUB_HOST or a profile")
}

func profileClient(name string, options []iothub.Option) (*iothub.Client, error) {
	config, err := parseConfig(configPath())

	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", name, err)
	}

	profile, ok := config.Profiles[name]

	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}

	if profile.ConnectionString != "" {
		return iothub.NewFromConnectionString(profile.ConnectionString, options...)
	}

	if profile.Host != "" {
		credential, err := iothub.NewDefaultCredential()

		if err != nil {
			return nil, err
		}

		return iothub.New(profile.Host, credential, options...)
	}

	return nil, fmt.Errorf("profile %q has no connection string or host", name)
}
