package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

type staticCredential struct{}

func (staticCredential) Authorization(ctx context.Context) (string, error) {
	return "SharedAccessSignature sr=test&sig=test&se=0", nil
}

func newHubClient(t *testing.T, handler http.Handler) *iothub.Client {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	client, err := iothub.New(server.URL, staticCredential{}, iothub.WithClient(server.Client()))
	require.NoError(t, err)

	return client
}

func findTool(t *testing.T, tools []Tool, name string) Tool {
	t.Helper()

	for _, tool := range tools {
		if tool.Name == name {
			return tool
		}
	}

	t.Fatalf("tool %q not found", name)

	return Tool{}
}

func TestToolsSchemas(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tools := Tools(client)

	names := make([]string, 0, len(tools))

	for _, tool := range tools {
		names = append(names, tool.Name)

		require.NotEmpty(t, tool.Description)
		require.NotNil(t, tool.Execute)

		data, err := json.Marshal(tool.Schema)
		require.NoError(t, err)

		assert.Contains(t, string(data), `"type":"object"`)
	}

	assert.ElementsMatch(t, []string{
		"list_devices",
		"get_device",
		"get_twin",
		"update_twin_tags",
		"invoke_method",
		"query",
		"registry_statistics",
	}, names)
}

func TestGetDeviceTool(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/thermostat-01", r.URL.Path)

		fmt.Fprint(w, `{"deviceId":"thermostat-01","status":"enabled"}`)
	}))

	tool := findTool(t, Tools(client), "get_device")

	result, err := tool.Execute(context.Background(), map[string]any{
		"device_id": "thermostat-01",
	})

	require.NoError(t, err)

	device, ok := result.(*models.Device)

	require.True(t, ok)
	assert.Equal(t, "thermostat-01", device.DeviceID)
}

func TestGetTwinToolModuleRouting(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twins/gateway-7/modules/$edgeAgent", r.URL.Path)

		fmt.Fprint(w, `{"deviceId":"gateway-7","moduleId":"$edgeAgent"}`)
	}))

	tool := findTool(t, Tools(client), "get_twin")

	result, err := tool.Execute(context.Background(), map[string]any{
		"device_id": "gateway-7",
		"module_id": "$edgeAgent",
	})

	require.NoError(t, err)

	twin, ok := result.(*models.Twin)

	require.True(t, ok)
	assert.Equal(t, "$edgeAgent", twin.ModuleID)
}

func TestUpdateTwinTagsTool(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/twins/thermostat-01", r.URL.Path)

		var patch models.Twin

		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "west", patch.Tags["wing"])

		fmt.Fprint(w, `{"deviceId":"thermostat-01","tags":{"wing":"west"}}`)
	}))

	tool := findTool(t, Tools(client), "update_twin_tags")

	_, err := tool.Execute(context.Background(), map[string]any{
		"device_id": "thermostat-01",

		"tags": map[string]any{
			"wing": "west",
		},
	})

	require.NoError(t, err)
}

func TestUpdateTwinTagsToolRejectsNonObject(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	tool := findTool(t, Tools(client), "update_twin_tags")

	_, err := tool.Execute(context.Background(), map[string]any{
		"device_id": "thermostat-01",
		"tags":      "west",
	})

	assert.Error(t, err)
}

func TestInvokeMethodTool(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request models.DirectMethodRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		assert.Equal(t, "reboot", request.MethodName)
		assert.Equal(t, 30, request.ResponseTimeoutInSeconds)
		assert.JSONEq(t, `{"delay":5}`, string(request.Payload))

		fmt.Fprint(w, `{"status":200}`)
	}))

	tool := findTool(t, Tools(client), "invoke_method")

	result, err := tool.Execute(context.Background(), map[string]any{
		"device_id":   "thermostat-01",
		"method_name": "reboot",

		"payload": map[string]any{
			"delay": 5,
		},

		"timeout": float64(30),
	})

	require.NoError(t, err)

	response, ok := result.(*models.DirectMethodResponse)

	require.True(t, ok)
	assert.Equal(t, 200, response.Status)
}

func TestQueryTool(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/query", r.URL.Path)
		assert.Equal(t, "100", r.Header.Get("x-ms-max-item-count"))

		fmt.Fprint(w, `[{"deviceId":"a"},{"deviceId":"b"}]`)
	}))

	tool := findTool(t, Tools(client), "query")

	result, err := tool.Execute(context.Background(), map[string]any{
		"query": "SELECT * FROM devices",
	})

	require.NoError(t, err)

	rows, ok := result.([]json.RawMessage)

	require.True(t, ok)
	assert.Len(t, rows, 2)
}

func TestRegistryStatisticsTool(t *testing.T) {
	client := newHubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/statistics/devices":
			fmt.Fprint(w, `{"totalDeviceCount":120,"enabledDeviceCount":118,"disabledDeviceCount":2}`)

		case "/statistics/service":
			fmt.Fprint(w, `{"connectedDeviceCount":97}`)

		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	tool := findTool(t, Tools(client), "registry_statistics")

	result, err := tool.Execute(context.Background(), map[string]any{})
	require.NoError(t, err)

	statistics, ok := result.(map[string]any)

	require.True(t, ok)

	assert.Equal(t, int64(120), statistics["totalDeviceCount"])
	assert.Equal(t, int64(97), statistics["connectedDeviceCount"])
}
