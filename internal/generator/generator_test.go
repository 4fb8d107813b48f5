package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openapiDocument = `{
	"openapi": "3.0.1",
	"info": {
		"title": "iotHubApi",
		"version": "2021-04-12"
	},
	"paths": {},
	"components": {
		"schemas": {
			"Device": {
				"type": "object",
				"description": "The device identity on the hub registry.",
				"required": ["deviceId"],
				"properties": {
					"deviceId": {
						"type": "string",
						"description": "The unique identifier of the device."
					},
					"etag": {
						"type": "string"
					},
					"cloudToDeviceMessageCount": {
						"type": "integer"
					},
					"lastActivityTime": {
						"type": "string",
						"format": "date-time"
					},
					"status": {
						"$ref": "#/components/schemas/DeviceStatus"
					}
				}
			},
			"DeviceStatus": {
				"type": "string",
				"description": "The status of the device.",
				"enum": ["enabled", "disabled"]
			}
		}
	}
}`

const swaggerDocument = `{
	"swagger": "2.0",
	"info": {
		"title": "iotHubApi",
		"version": "2021-04-12"
	},
	"paths": {},
	"definitions": {
		"JobRequest": {
			"type": "object",
			"properties": {
				"jobId": {
					"type": "string"
				},
				"maxExecutionTimeInSeconds": {
					"type": "integer",
					"format": "int64"
				}
			}
		}
	}
}`

func writeDocument(t *testing.T, document string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api.json")

	require.NoError(t, os.WriteFile(path, []byte(document), 0644))

	return path
}

func TestGenerate(t *testing.T) {
	output := t.TempDir()

	generator := New(&Config{
		Input:      writeDocument(t, openapiDocument),
		Output:     output,
		Package:    "models",
		FileSuffix: "_gen.go",
	})

	require.NoError(t, generator.Generate())

	data, err := os.ReadFile(filepath.Join(output, "device_gen.go"))
	require.NoError(t, err)

	source := string(data)

	assert.Contains(t, source, "// Code generated by modelgen. DO NOT EDIT.")
	assert.Contains(t, source, "package models")
	assert.Contains(t, source, "// Device - The device identity on the hub registry.")
	assert.Contains(t, source, "type Device struct {")
	assert.Contains(t, source, "DeviceID")
	assert.Contains(t, source, "`json:\"deviceId\"`")
	assert.Contains(t, source, "`json:\"etag,omitempty\"`")
	assert.Contains(t, source, "LastActivityTime")
	assert.Contains(t, source, "*Time")
	assert.Contains(t, source, "Status")
	assert.Contains(t, source, "DeviceStatus")
	assert.Contains(t, source, "func (m *Device) Validate() error {")
	assert.Contains(t, source, `&MissingFieldError{Type: "device", Field: "deviceId"}`)

	data, err = os.ReadFile(filepath.Join(output, "device_status_gen.go"))
	require.NoError(t, err)

	source = string(data)

	assert.Contains(t, source, "type DeviceStatus string")
	assert.Contains(t, source, `DeviceStatusEnabled  DeviceStatus = "enabled"`)
	assert.Contains(t, source, `DeviceStatusDisabled DeviceStatus = "disabled"`)
}

func TestGenerateSwagger(t *testing.T) {
	output := t.TempDir()

	generator := New(&Config{
		Input:      writeDocument(t, swaggerDocument),
		Output:     output,
		Package:    "models",
		FileSuffix: "_gen.go",
	})

	require.NoError(t, generator.Generate())

	data, err := os.ReadFile(filepath.Join(output, "job_request_gen.go"))
	require.NoError(t, err)

	source := string(data)

	assert.Contains(t, source, "type JobRequest struct {")
	assert.Contains(t, source, "JobID")
	assert.Contains(t, source, "MaxExecutionTimeInSeconds int64")
	assert.NotContains(t, source, "func (m *JobRequest) Validate")
}

func TestGenerateInvalidInput(t *testing.T) {
	generator := New(&Config{
		Input:      writeDocument(t, "not a service description"),
		Output:     t.TempDir(),
		Package:    "models",
		FileSuffix: "_gen.go",
	})

	require.Error(t, generator.Generate())
}
