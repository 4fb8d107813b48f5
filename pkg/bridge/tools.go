package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edgetap/iothub-go/pkg/iothub"
	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

type Tool struct {
	Name        string
	Description string

	Schema map[string]any

	Execute func(ctx context.Context, args map[string]any) (any, error)
}

// Tools returns the hub operations offered over MCP.
func Tools(client *iothub.Client) []Tool {
	return []Tool{
		{
			Name:        "list_devices",
			Description: "List device identities registered in the IoT hub",

			Schema: objectSchema(map[string]any{
				"top": map[string]any{
					"type":        "integer",
					"description": "Maximum number of devices to return",
				},
			}),

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				return client.Devices.List(ctx, intArg(args, "top"))
			},
		},
		{
			Name:        "get_device",
			Description: "Read one device identity from the IoT hub registry",

			Schema: objectSchema(map[string]any{
				"device_id": map[string]any{
					"type":        "string",
					"description": "Device id in the hub registry",
				},
			}, "device_id"),

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				return client.Devices.Get(ctx, stringArg(args, "device_id"))
			},
		},
		{
			Name:        "get_twin",
			Description: "Read the twin of a device, or of a module when module_id is set",

			Schema: objectSchema(map[string]any{
				"device_id": map[string]any{
					"type":        "string",
					"description": "Device id in the hub registry",
				},
				"module_id": map[string]any{
					"type":        "string",
					"description": "Optional module id for a module twin",
				},
			}, "device_id"),

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				deviceID := stringArg(args, "device_id")

				if moduleID := stringArg(args, "module_id"); moduleID != "" {
					return client.Twins.GetModule(ctx, deviceID, moduleID)
				}

				return client.Twins.Get(ctx, deviceID)
			},
		},
		{
			Name:        "update_twin_tags",
			Description: "Merge tags into a device twin",

			Schema: objectSchema(map[string]any{
				"device_id": map[string]any{
					"type":        "string",
					"description": "Device id in the hub registry",
				},
				"tags": map[string]any{
					"type":        "object",
					"description": "Tags to merge; null values remove a tag",
				},
			}, "device_id", "tags"),

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				tags, ok := args["tags"].(map[string]any)

				if !ok {
					return nil, fmt.Errorf("tags must be an object")
				}

				patch := &models.Twin{
					Tags: tags,
				}

				return client.Twins.Update(ctx, stringArg(args, "device_id"), patch)
			},
		},
		{
			Name:        "invoke_method",
			Description: "Invoke a direct method on a connected device and return its response",

			Schema: objectSchema(map[string]any{
				"device_id": map[string]any{
					"type":        "string",
					"description": "Device id in the hub registry",
				},
				"method_name": map[string]any{
					"type":        "string",
					"description": "Name of the direct method",
				},
				"payload": map[string]any{
					"description": "JSON payload passed to the method",
				},
				"timeout": map[string]any{
					"type":        "integer",
					"description": "Response timeout in seconds",
				},
			}, "device_id", "method_name"),

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				request := &models.DirectMethodRequest{
					MethodName: stringArg(args, "method_name"),

					ResponseTimeoutInSeconds: intArg(args, "timeout"),
				}

				if payload, ok := args["payload"]; ok {
					data, err := json.Marshal(payload)

					if err != nil {
						return nil, err
					}

					request.Payload = data
				}

				return client.Methods.Invoke(ctx, stringArg(args, "device_id"), request)
			},
		},
		{
			Name:        "query",
			Description: "Run an IoT hub query, for example SELECT * FROM devices WHERE tags.building = '43'",

			Schema: objectSchema(map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Hub query text",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of rows to return",
				},
			}, "query"),

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				limit := intArg(args, "limit")

				if limit <= 0 {
					limit = 100
				}

				return client.Devices.Query(stringArg(args, "query"), limit).NextPage(ctx)
			},
		},
		{
			Name:        "registry_statistics",
			Description: "Read device registry and connectivity statistics of the IoT hub",

			Schema: objectSchema(map[string]any{}),

			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				devices, err := client.Statistics.Devices(ctx)

				if err != nil {
					return nil, err
				}

				service, err := client.Statistics.Service(ctx)

				if err != nil {
					return nil, err
				}

				return map[string]any{
					"totalDeviceCount":     devices.TotalDeviceCount,
					"enabledDeviceCount":   devices.EnabledDeviceCount,
					"disabledDeviceCount":  devices.DisabledDeviceCount,
					"connectedDeviceCount": service.ConnectedDeviceCount,
				}, nil
			},
		},
	}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

func stringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)

	return value
}

func intArg(args map[string]any, key string) int {
	switch value := args[key].(type) {
	case float64:
		return int(value)

	case int:
		return value
	}

	return 0
}
