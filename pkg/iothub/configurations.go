package iothub

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// ConfigurationsClient manages automatic device configurations and edge
// deployments.
type ConfigurationsClient struct {
	client *Client
}

// Get reads one configuration.
func (c *ConfigurationsClient) Get(ctx context.Context, id string) (*models.Configuration, error) {
	if id == "" {
		return nil, ErrMissingConfigurationID
	}

	var configuration models.Configuration

	_, err := c.client.do(ctx, http.MethodGet, "/configurations/"+url.PathEscape(id), nil, nil, nil, &configuration)

	if err != nil {
		return nil, err
	}

	return &configuration, nil
}

// List returns configurations, up to top entries or the service maximum
// when top is zero.
func (c *ConfigurationsClient) List(ctx context.Context, top int) ([]models.Configuration, error) {
	query := url.Values{}

	if top > 0 {
		query.Set("top", strconv.Itoa(top))
	}

	var configurations []models.Configuration

	_, err := c.client.do(ctx, http.MethodGet, "/configurations", query, nil, nil, &configurations)

	if err != nil {
		return nil, err
	}

	for i := range configurations {
		if err := configurations[i].Validate(); err != nil {
			return nil, &DecodeError{Err: err}
		}
	}

	return configurations, nil
}

// CreateOrUpdate creates a configuration or replaces an existing one.
// When the configuration carries an etag, the replace is conditional on
// it.
func (c *ConfigurationsClient) CreateOrUpdate(ctx context.Context, configuration *models.Configuration) (*models.Configuration, error) {
	if configuration == nil || configuration.ID == "" {
		return nil, ErrMissingConfigurationID
	}

	var headers map[string]string

	if configuration.ETag != "" {
		headers = ifMatch(configuration.ETag)
	}

	var result models.Configuration

	_, err := c.client.do(ctx, http.MethodPut, "/configurations/"+url.PathEscape(configuration.ID), nil, headers, configuration, &result)

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete removes a configuration. An empty etag removes it
// unconditionally.
func (c *ConfigurationsClient) Delete(ctx context.Context, id, etag string) error {
	if id == "" {
		return ErrMissingConfigurationID
	}

	_, err := c.client.do(ctx, http.MethodDelete, "/configurations/"+url.PathEscape(id), nil, ifMatch(etag), nil, nil)

	return err
}

// TestQueries asks the service to validate a target condition and metric
// queries without applying anything.
func (c *ConfigurationsClient) TestQueries(ctx context.Context, input *models.ConfigurationQueriesTestInput) (*models.ConfigurationQueriesTestResponse, error) {
	if input == nil {
		input = &models.ConfigurationQueriesTestInput{}
	}

	var response models.ConfigurationQueriesTestResponse

	_, err := c.client.do(ctx, http.MethodPost, "/configurations/testQueries", nil, nil, input, &response)

	if err != nil {
		return nil, err
	}

	return &response, nil
}
