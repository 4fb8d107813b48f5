package method

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adrianliechti/go-cli"

	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

func Invoke(ctx context.Context, client *iothub.Client, deviceID, moduleID, name, payload string, timeout int) error {
	request := &models.DirectMethodRequest{
		MethodName: name,

		ResponseTimeoutInSeconds: timeout,
	}

	if payload != "" {
		if !json.Valid([]byte(payload)) {
			return fmt.Errorf("method payload is not valid json")
		}

		request.Payload = json.RawMessage(payload)
	}

	var response *models.DirectMethodResponse
	var err error

	if moduleID != "" {
		response, err = client.Methods.InvokeModule(ctx, deviceID, moduleID, request)
	} else {
		response, err = client.Methods.Invoke(ctx, deviceID, request)
	}

	if err != nil {
		return err
	}

	cli.Infof("status: %d", response.Status)

	if len(response.Payload) > 0 {
		fmt.Println(string(response.Payload))
	}

	return nil
}
