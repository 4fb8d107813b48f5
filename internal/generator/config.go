package generator

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives a generator run. Input takes a file path or URL to an
// OpenAPI or Swagger 2.0 service description.
type Config struct {
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Package string `yaml:"package"`

	FileSuffix string `yaml:"fileSuffix"`

	Skip   []string          `yaml:"skip"`
	Rename map[string]string `yaml:"rename"`
}

func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	var config Config

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.Input == "" {
		return nil, errors.New("input is required")
	}

	if config.Output == "" {
		config.Output = "."
	}

	if config.Package == "" {
		config.Package = "models"
	}

	if config.FileSuffix == "" {
		config.FileSuffix = "_gen.go"
	}

	return &config, nil
}
