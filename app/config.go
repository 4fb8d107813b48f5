package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional profile file at ~/.config/iothub/config.yaml.
type Config struct {
	Profiles map[string]Profile `json:"profiles" yaml:"profiles"`
}

type Profile struct {
	ConnectionString string `json:"connectionString" yaml:"connectionString"`
	Host             string `json:"host" yaml:"host"`
}

func parseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	var config Config

	if err := json.Unmarshal(data, &config); err == nil {
		return &config, nil
	}

	if err := yaml.Unmarshal(data, &config); err == nil {
		return &config, nil
	}

	return nil, errors.New("failed to parse config file")
}

func configPath() string {
	if path := os.Getenv("IOTHUB_CONFIG"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()

	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "iothub", "config.yaml")
}
