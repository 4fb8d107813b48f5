package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "modelgen.yaml")

	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestParseConfig(t *testing.T) {
	path := writeConfig(t, `
input: https://example.com/iothub.json
output: pkg/iothub/models
package: models

skip:
  - PrivateLinkResources

rename:
  iotEdge: IoTEdge
`)

	config, err := ParseConfig(path)
	require.NoError(t, err)

	require.Equal(t, "https://example.com/iothub.json", config.Input)
	require.Equal(t, "pkg/iothub/models", config.Output)
	require.Equal(t, "models", config.Package)
	require.Equal(t, "_gen.go", config.FileSuffix)
	require.Equal(t, []string{"PrivateLinkResources"}, config.Skip)
	require.Equal(t, "IoTEdge", config.Rename["iotEdge"])
}

func TestParseConfigDefaults(t *testing.T) {
	path := writeConfig(t, "input: api.json\n")

	config, err := ParseConfig(path)
	require.NoError(t, err)

	require.Equal(t, ".", config.Output)
	require.Equal(t, "models", config.Package)
	require.Equal(t, "_gen.go", config.FileSuffix)
}

func TestParseConfigMissingInput(t *testing.T) {
	path := writeConfig(t, "package: models\n")

	_, err := ParseConfig(path)
	require.ErrorContains(t, err, "input is required")
}

func TestParseConfigMissingFile(t *testing.T) {
	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
