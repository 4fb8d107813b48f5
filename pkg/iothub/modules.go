package iothub

import (
	"context"
	"net/http"
	"net/url"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// ModulesClient manages module identities under a device.
type ModulesClient struct {
	client *Client
}

func modulePath(deviceID, moduleID string) string {
	return "/devices/" + url.PathEscape(deviceID) + "/modules/" + url.PathEscape(moduleID)
}

// Get reads one module identity.
func (c *ModulesClient) Get(ctx context.Context, deviceID, moduleID string) (*models.Module, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	if moduleID == "" {
		return nil, ErrMissingModuleID
	}

	var module models.Module

	_, err := c.client.do(ctx, http.MethodGet, modulePath(deviceID, moduleID), nil, nil, nil, &module)

	if err != nil {
		return nil, err
	}

	return &module, nil
}

// List returns all module identities of a device.
func (c *ModulesClient) List(ctx context.Context, deviceID string) ([]models.Module, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	var modules []models.Module

	_, err := c.client.do(ctx, http.MethodGet, "/devices/"+url.PathEscape(deviceID)+"/modules", nil, nil, nil, &modules)

	if err != nil {
		return nil, err
	}

	for i := range modules {
		if err := modules[i].Validate(); err != nil {
			return nil, &DecodeError{Err: err}
		}
	}

	return modules, nil
}

// CreateOrUpdate registers a module or replaces an existing identity.
// When the module carries an etag, the replace is conditional on it.
func (c *ModulesClient) CreateOrUpdate(ctx context.Context, module *models.Module) (*models.Module, error) {
	if module == nil || module.DeviceID == "" {
		return nil, ErrMissingDeviceID
	}

	if module.ModuleID == "" {
		return nil, ErrMissingModuleID
	}

	var headers map[string]string

	if module.ETag != "" {
		headers = ifMatch(module.ETag)
	}

	var result models.Module

	_, err := c.client.do(ctx, http.MethodPut, modulePath(module.DeviceID, module.ModuleID), nil, headers, module, &result)

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete removes a module identity. An empty etag removes it
// unconditionally.
func (c *ModulesClient) Delete(ctx context.Context, deviceID, moduleID, etag string) error {
	if deviceID == "" {
		return ErrMissingDeviceID
	}

	if moduleID == "" {
		return ErrMissingModuleID
	}

	_, err := c.client.do(ctx, http.MethodDelete, modulePath(deviceID, moduleID), nil, ifMatch(etag), nil, nil)

	return err
}
