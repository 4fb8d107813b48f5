package iothub

import (
	"context"
	"net/http"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// StatisticsClient reads hub-level counters.
type StatisticsClient struct {
	client *Client
}

// Devices returns identity registry statistics.
func (c *StatisticsClient) Devices(ctx context.Context) (*models.RegistryStatistics, error) {
	var statistics models.RegistryStatistics

	_, err := c.client.do(ctx, http.MethodGet, "/statistics/devices", nil, nil, nil, &statistics)

	if err != nil {
		return nil, err
	}

	return &statistics, nil
}

// Service returns hub connectivity statistics.
func (c *StatisticsClient) Service(ctx context.Context) (*models.ServiceStatistics, error) {
	var statistics models.ServiceStatistics

	_, err := c.client.do(ctx, http.MethodGet, "/statistics/service", nil, nil, nil, &statistics)

	if err != nil {
		return nil, err
	}

	return &statistics, nil
}
