// Package config loads runtime settings from an optional YAML file overlaid
// with SIMDISK_* environment variables. CLI flags override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	envVarPrefix = "SIMDISK"
	appName      = "simdisk"
)

type Config struct {
	Image      string `envconfig:"SIMDISK_IMAGE"                          yaml:"image"`
	Workers    int    `envconfig:"SIMDISK_WORKERS"                        yaml:"workers"`
	QueueDepth int    `envconfig:"SIMDISK_QUEUE_DEPTH"                    yaml:"queueDepth"`
	AutoFormat bool   `envconfig:"SIMDISK_AUTO_FORMAT"                    yaml:"autoFormat"`
	JSONLogs   bool   `envconfig:"SIMDISK_JSON_LOGS"                      yaml:"jsonLogs"`
}

// Load reads the config file (SIMDISK_CONFIG_FILE or
// ~/.config/simdisk.yaml), then applies environment variables on top.
// A missing file is not an error.
func Load() (*Config, error) {
	configFile := os.Getenv(envVarPrefix + "_CONFIG_FILE")
	if configFile == "" {
		home, _ := os.UserHomeDir()
		configFile = filepath.Join(home, ".config", appName+".yaml")
	}

	c := Config{Image: "disk.img"}
	data, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		if err := yaml.UnmarshalStrict(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshaling config file: %w", err)
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return &c, nil
}

func (c *Config) Validate() error {
	if c.Image == "" {
		return fmt.Errorf(
			"missing required configuration: image / %s_IMAGE",
			envVarPrefix,
		)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	if c.QueueDepth < 0 {
		return fmt.Errorf("invalid queue depth: %d", c.QueueDepth)
	}
	return nil
}
