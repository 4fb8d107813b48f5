package iothub

import (
	"context"
	"net/http"
	"net/url"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// TwinsClient reads and writes device and module twins.
type TwinsClient struct {
	client *Client
}

func twinPath(deviceID string) string {
	return "/twins/" + url.PathEscape(deviceID)
}

func moduleTwinPath(deviceID, moduleID string) string {
	return twinPath(deviceID) + "/modules/" + url.PathEscape(moduleID)
}

// Get reads a device twin.
func (c *TwinsClient) Get(ctx context.Context, deviceID string) (*models.Twin, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	var twin models.Twin

	_, err := c.client.do(ctx, http.MethodGet, twinPath(deviceID), nil, nil, nil, &twin)

	if err != nil {
		return nil, err
	}

	return &twin, nil
}

// Update patches a device twin. Only tags and desired properties present
// in the patch change; a null value removes the property. The patch etag
// makes the write conditional, an empty one writes unconditionally.
func (c *TwinsClient) Update(ctx context.Context, deviceID string, patch *models.Twin) (*models.Twin, error) {
	return c.write(ctx, http.MethodPatch, twinPath(deviceID), deviceID, patch)
}

// Replace overwrites the writable parts of a device twin with the given
// document.
func (c *TwinsClient) Replace(ctx context.Context, deviceID string, twin *models.Twin) (*models.Twin, error) {
	return c.write(ctx, http.MethodPut, twinPath(deviceID), deviceID, twin)
}

// GetModule reads a module twin.
func (c *TwinsClient) GetModule(ctx context.Context, deviceID, moduleID string) (*models.Twin, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	if moduleID == "" {
		return nil, ErrMissingModuleID
	}

	var twin models.Twin

	_, err := c.client.do(ctx, http.MethodGet, moduleTwinPath(deviceID, moduleID), nil, nil, nil, &twin)

	if err != nil {
		return nil, err
	}

	return &twin, nil
}

// UpdateModule patches a module twin the same way Update patches a
// device twin.
func (c *TwinsClient) UpdateModule(ctx context.Context, deviceID, moduleID string, patch *models.Twin) (*models.Twin, error) {
	if moduleID == "" {
		return nil, ErrMissingModuleID
	}

	return c.write(ctx, http.MethodPatch, moduleTwinPath(deviceID, moduleID), deviceID, patch)
}

// ReplaceModule overwrites the writable parts of a module twin.
func (c *TwinsClient) ReplaceModule(ctx context.Context, deviceID, moduleID string, twin *models.Twin) (*models.Twin, error) {
	if moduleID == "" {
		return nil, ErrMissingModuleID
	}

	return c.write(ctx, http.MethodPut, moduleTwinPath(deviceID, moduleID), deviceID, twin)
}

// Query pages over twins selected by a hub query, for example
// "SELECT * FROM devices WHERE tags.building = '43'".
func (c *TwinsClient) Query(query string, pageSize int) *Pager[models.Twin] {
	p := &Pager[models.Twin]{
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

func (c *TwinsClient) write(ctx context.Context, method, path, deviceID string, twin *models.Twin) (*models.Twin, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	if twin == nil {
		twin = &models.Twin{}
	}

	var result models.Twin

	_, err := c.client.do(ctx, method, path, nil, ifMatch(twin.ETag), twin, &result)

	if err != nil {
		return nil, err
	}

	return &result, nil
}
