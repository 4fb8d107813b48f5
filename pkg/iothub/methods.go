package iothub

import (
	"context"
	"net/http"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// MethodsClient invokes direct methods on connected devices and modules.
type MethodsClient struct {
	client *Client
}

// Invoke calls a direct method on a device and waits for its response.
// The device's own result code travels in the response status, so a
// successful HTTP exchange can still carry a device-side failure.
func (c *MethodsClient) Invoke(ctx context.Context, deviceID string, request *models.DirectMethodRequest) (*models.DirectMethodResponse, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	return c.invoke(ctx, twinPath(deviceID)+"/methods", request)
}

// InvokeModule calls a direct method on a module.
func (c *MethodsClient) InvokeModule(ctx context.Context, deviceID, moduleID string, request *models.DirectMethodRequest) (*models.DirectMethodResponse, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	if moduleID == "" {
		return nil, ErrMissingModuleID
	}

	return c.invoke(ctx, moduleTwinPath(deviceID, moduleID)+"/methods", request)
}

func (c *MethodsClient) invoke(ctx context.Context, path string, request *models.DirectMethodRequest) (*models.DirectMethodResponse, error) {
	if request == nil {
		request = &models.DirectMethodRequest{}
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	var response models.DirectMethodResponse

	_, err := c.client.do(ctx, http.MethodPost, path, nil, nil, request, &response)

	if err != nil {
		return nil, err
	}

	return &response, nil
}
