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

func TestTwinsGet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/twins/thermostat-01", r.URL.Path)

		fmt.Fprint(w, `{
			"deviceId": "thermostat-01",
			"etag": "AAAAAAAAAAE=",
			"version": 7,
			"tags": {"building": "43"},
			"properties": {
				"desired": {"targetTemperature": 21.5, "$version": 4},
				"reported": {"temperature": 20.9, "$version": 6}
			}
		}`)
	}))

	twin, err := client.Twins.Get(context.Background(), "thermostat-01")
	require.NoError(t, err)

	assert.Equal(t, "thermostat-01", twin.DeviceID)
	assert.Equal(t, int64(7), twin.Version)
	assert.Equal(t, "43", twin.Tags["building"])

	require.NotNil(t, twin.Properties)
	assert.Equal(t, 21.5, twin.Properties.Desired["targetTemperature"])
}

func TestTwinsUpdate(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/twins/thermostat-01", r.URL.Path)
		assert.Equal(t, `"AAAAAAAAAAE="`, r.Header.Get("If-Match"))

		var patch models.Twin

		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "west", patch.Tags["wing"])

		fmt.Fprint(w, `{"deviceId":"thermostat-01","etag":"AAAAAAAAAAI=","tags":{"wing":"west"}}`)
	}))

	twin, err := client.Twins.Update(context.Background(), "thermostat-01", &models.Twin{
		ETag: "AAAAAAAAAAE=",

		Tags: map[string]any{
			"wing": "west",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAAI=", twin.ETag)
}

func TestTwinsUpdateUnconditional(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "*", r.Header.Get("If-Match"))

		fmt.Fprint(w, `{"deviceId":"thermostat-01"}`)
	}))

	_, err := client.Twins.Update(context.Background(), "thermostat-01", &models.Twin{
		Tags: map[string]any{
			"wing": "west",
		},
	})

	require.NoError(t, err)
}

func TestTwinsReplace(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/twins/thermostat-01", r.URL.Path)

		fmt.Fprint(w, `{"deviceId":"thermostat-01","etag":"AAAAAAAAAAM="}`)
	}))

	twin, err := client.Twins.Replace(context.Background(), "thermostat-01", &models.Twin{
		Properties: &models.TwinProperties{
			Desired: map[string]any{
				"targetTemperature": 19,
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAAM=", twin.ETag)
}

func TestModuleTwins(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twins/gateway-7/modules/$edgeAgent", r.URL.Path)

		fmt.Fprint(w, `{"deviceId":"gateway-7","moduleId":"$edgeAgent"}`)
	}))

	ctx := context.Background()

	twin, err := client.Twins.GetModule(ctx, "gateway-7", "$edgeAgent")
	require.NoError(t, err)

	assert.Equal(t, "$edgeAgent", twin.ModuleID)

	_, err = client.Twins.UpdateModule(ctx, "gateway-7", "$edgeAgent", &models.Twin{
		Properties: &models.TwinProperties{
			Desired: map[string]any{"logLevel": "debug"},
		},
	})

	require.NoError(t, err)

	_, err = client.Twins.ReplaceModule(ctx, "gateway-7", "$edgeAgent", &models.Twin{})
	require.NoError(t, err)
}

func TestTwinsMissingIDs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	ctx := context.Background()

	_, err := client.Twins.Get(ctx, "")
	assert.ErrorIs(t, err, ErrMissingDeviceID)

	_, err = client.Twins.Update(ctx, "", nil)
	assert.ErrorIs(t, err, ErrMissingDeviceID)

	_, err = client.Twins.GetModule(ctx, "gateway-7", "")
	assert.ErrorIs(t, err, ErrMissingModuleID)

	_, err = client.Twins.UpdateModule(ctx, "gateway-7", "", nil)
	assert.ErrorIs(t, err, ErrMissingModuleID)
}
