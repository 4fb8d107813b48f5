package iothub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

func TestMethodsInvoke(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/twins/thermostat-01/methods", r.URL.Path)

		var request models.DirectMethodRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		assert.Equal(t, "reboot", request.MethodName)
		assert.Equal(t, 30, request.ResponseTimeoutInSeconds)
		assert.JSONEq(t, `{"delay":5}`, string(request.Payload))

		fmt.Fprint(w, `{"status":200,"payload":{"rebooting":true}}`)
	}))

	response, err := client.Methods.Invoke(context.Background(), "thermostat-01", &models.DirectMethodRequest{
		MethodName: "reboot",

		Payload: json.RawMessage(`{"delay":5}`),

		ResponseTimeoutInSeconds: 30,
	})

	require.NoError(t, err)

	assert.Equal(t, 200, response.Status)
	assert.JSONEq(t, `{"rebooting":true}`, string(response.Payload))
}

func TestMethodsInvokeDeviceFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":500,"payload":{"reason":"unsupported"}}`)
	}))

	response, err := client.Methods.Invoke(context.Background(), "thermostat-01", &models.DirectMethodRequest{
		MethodName: "reboot",
	})

	// a device-side failure is still a successful exchange
	require.NoError(t, err)
	assert.Equal(t, 500, response.Status)
}

func TestMethodsInvokeModule(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twins/gateway-7/modules/$edgeAgent/methods", r.URL.Path)

		fmt.Fprint(w, `{"status":200}`)
	}))

	response, err := client.Methods.InvokeModule(context.Background(), "gateway-7", "$edgeAgent", &models.DirectMethodRequest{
		MethodName: "RestartModule",
	})

	require.NoError(t, err)
	assert.Equal(t, 200, response.Status)
}

func TestMethodsInvokeMissingName(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	_, err := client.Methods.Invoke(context.Background(), "thermostat-01", &models.DirectMethodRequest{})

	var missing *models.MissingFieldError

	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "methodName", missing.Field)
}

func TestMethodsInvokeMissingIDs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	ctx := context.Background()

	_, err := client.Methods.Invoke(ctx, "", nil)
	assert.ErrorIs(t, err, ErrMissingDeviceID)

	_, err = client.Methods.InvokeModule(ctx, "gateway-7", "", nil)
	assert.ErrorIs(t, err, ErrMissingModuleID)
}
