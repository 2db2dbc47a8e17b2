// Package config loads CLI configuration from a YAML file with
// environment variable overrides for the credential fields.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lmops/lmctl/pkg/log"
	"github.com/lmops/lmctl/pkg/types"
)

// Environment variables overriding the credential block. The access key
// in particular tends to live in the environment rather than on disk.
const (
	EnvCompany   = "LMCTL_COMPANY"
	EnvAccessID  = "LMCTL_ACCESS_ID"
	EnvAccessKey = "LMCTL_ACCESS_KEY"
)

// Config is the full CLI configuration.
type Config struct {
	Credential types.Credential `yaml:"credential"`
	Log        LogConfig        `yaml:"log"`
}

// LogConfig mirrors pkg/log settings in file form.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load reads the file at path, if any, and applies environment overrides.
// An empty path skips the file and builds the config from the environment
// alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv(EnvCompany); v != "" {
		cfg.Credential.Company = v
	}
	if v := os.Getenv(EnvAccessID); v != "" {
		cfg.Credential.AccessID = v
	}
	if v := os.Getenv(EnvAccessKey); v != "" {
		cfg.Credential.AccessKey = v
	}
	return cfg, nil
}

// Validate checks that the credential triple is complete.
func (c *Config) Validate() error {
	switch {
	case c.Credential.Company == "":
		return fmt.Errorf("config: company is required")
	case c.Credential.AccessID == "":
		return fmt.Errorf("config: access id is required")
	case c.Credential.AccessKey == "":
		return fmt.Errorf("config: access key is required")
	}
	return nil
}

// LogSettings converts the file form into pkg/log's Config.
func (c *Config) LogSettings() log.Config {
	return log.Config{
		Level:      log.Level(c.Log.Level),
		JSONOutput: c.Log.JSON,
	}
}
