package iothub

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

func TestModulesGet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/gateway-7/modules/$edgeAgent", r.URL.Path)

		fmt.Fprint(w, `{"moduleId":"$edgeAgent","deviceId":"gateway-7","managedBy":"iotEdge"}`)
	}))

	module, err := client.Modules.Get(context.Background(), "gateway-7", "$edgeAgent")
	require.NoError(t, err)

	assert.Equal(t, "$edgeAgent", module.ModuleID)
	assert.Equal(t, "iotEdge", module.ManagedBy)
}

func TestModulesList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/gateway-7/modules", r.URL.Path)

		fmt.Fprint(w, `[
			{"moduleId":"$edgeAgent","deviceId":"gateway-7"},
			{"moduleId":"$edgeHub","deviceId":"gateway-7"}
		]`)
	}))

	modules, err := client.Modules.List(context.Background(), "gateway-7")
	require.NoError(t, err)

	require.Len(t, modules, 2)
	assert.Equal(t, "$edgeHub", modules[1].ModuleID)
}

func TestModulesCreateOrUpdate(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/devices/gateway-7/modules/telemetry", r.URL.Path)

		fmt.Fprint(w, `{"moduleId":"telemetry","deviceId":"gateway-7","etag":"MQ=="}`)
	}))

	module, err := client.Modules.CreateOrUpdate(context.Background(), &models.Module{
		ModuleID: "telemetry",
		DeviceID: "gateway-7",
	})

	require.NoError(t, err)
	assert.Equal(t, "MQ==", module.ETag)
}

func TestModulesDelete(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, `"MQ=="`, r.Header.Get("If-Match"))

		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.Modules.Delete(context.Background(), "gateway-7", "telemetry", "MQ=="))
}

func TestModulesMissingIDs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	ctx := context.Background()

	_, err := client.Modules.Get(ctx, "", "$edgeAgent")
	assert.ErrorIs(t, err, ErrMissingDeviceID)

	_, err = client.Modules.Get(ctx, "gateway-7", "")
	assert.ErrorIs(t, err, ErrMissingModuleID)

	_, err = client.Modules.List(ctx, "")
	assert.ErrorIs(t, err, ErrMissingDeviceID)

	_, err = client.Modules.CreateOrUpdate(ctx, &models.Module{DeviceID: "gateway-7"})
	assert.ErrorIs(t, err, ErrMissingModuleID)

	assert.ErrorIs(t, client.Modules.Delete(ctx, "gateway-7", "", ""), ErrMissingModuleID)
}
