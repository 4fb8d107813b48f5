package iothub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// DevicesClient manages device identities in the hub registry.
type DevicesClient struct {
	client *Client
}

// Get reads one device identity.
func (c *DevicesClient) Get(ctx context.Context, deviceID string) (*models.Device, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	var device models.Device

	_, err := c.client.do(ctx, http.MethodGet, "/devices/"+url.PathEscape(deviceID), nil, nil, nil, &device)

	if err != nil {
		return nil, err
	}

	return &device, nil
}

// CreateOrUpdate registers a device or replaces an existing identity.
// When the device carries an etag, the replace is conditional on it.
func (c *DevicesClient) CreateOrUpdate(ctx context.Context, device *models.Device) (*models.Device, error) {
	if device == nil || device.DeviceID == "" {
		return nil, ErrMissingDeviceID
	}

	var headers map[string]string

	if device.ETag != "" {
		headers = ifMatch(device.ETag)
	}

	var result models.Device

	_, err := c.client.do(ctx, http.MethodPut, "/devices/"+url.PathEscape(device.DeviceID), nil, headers, device, &result)

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete removes a device identity. An empty etag removes it
// unconditionally.
func (c *DevicesClient) Delete(ctx context.Context, deviceID, etag string) error {
	if deviceID == "" {
		return ErrMissingDeviceID
	}

	_, err := c.client.do(ctx, http.MethodDelete, "/devices/"+url.PathEscape(deviceID), nil, ifMatch(etag), nil, nil)

	return err
}

// List returns device identities, up to top entries or the service
// maximum when top is zero. For anything beyond small registries prefer
// Query, which pages.
func (c *DevicesClient) List(ctx context.Context, top int) ([]models.Device, error) {
	query := url.Values{}

	if top > 0 {
		query.Set("top", strconv.Itoa(top))
	}

	var devices []models.Device

	_, err := c.client.do(ctx, http.MethodGet, "/devices", query, nil, nil, &devices)

	if err != nil {
		return nil, err
	}

	for i := range devices {
		if err := devices[i].Validate(); err != nil {
			return nil, &DecodeError{Err: err}
		}
	}

	return devices, nil
}

// Query runs a registry query and pages over the raw result rows. Rows
// stay raw JSON because projections and aggregates do not return twins.
func (c *DevicesClient) Query(query string, pageSize int) *Pager[json.RawMessage] {
	p := &Pager[json.RawMessage]{
		client: c.client,

		method: http.MethodPost,
		path:   "/devices/query",
		body:   models.QuerySpecification{Query: query},

		pageSize: pageSize,
	}

	if query == "" {
		p.err = ErrMissingQuery
	}

	return p
}

// Bulk runs up to a hundred registry operations in one call. The service
// applies each entry according to its import mode.
func (c *DevicesClient) Bulk(ctx context.Context, devices []models.ExportImportDevice) (*models.BulkRegistryOperationResult, error) {
	if len(devices) == 0 {
		return nil, ErrMissingDeviceID
	}

	for i := range devices {
		if err := devices[i].Validate(); err != nil {
			return nil, err
		}
	}

	var result models.BulkRegistryOperationResult

	_, err := c.client.do(ctx, http.MethodPost, "/devices", nil, nil, devices, &result)

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ApplyConfigurationContent pushes a configuration payload onto one edge
// device directly, outside of any deployment.
func (c *DevicesClient) ApplyConfigurationContent(ctx context.Context, deviceID string, content *models.ConfigurationContent) error {
	if deviceID == "" {
		return ErrMissingDeviceID
	}

	_, err := c.client.do(ctx, http.MethodPost, "/devices/"+url.PathEscape(deviceID)+"/applyConfigurationContent", nil, nil, content, nil)

	return err
}

// PurgeMessageQueue drops all queued cloud-to-device messages for a
// device.
func (c *DevicesClient) PurgeMessageQueue(ctx context.Context, deviceID string) (*models.PurgeMessageQueueResult, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	var result models.PurgeMessageQueueResult

	_, err := c.client.do(ctx, http.MethodDelete, "/devices/"+url.PathEscape(deviceID)+"/commands", nil, nil, nil, &result)

	if err != nil {
		return nil, err
	}

	return &result, nil
}
