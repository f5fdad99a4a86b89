// Package config loads the process configuration: defaults, then an
// optional YAML file, then environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AgentServerConfig is the bind address of one agent server.
type AgentServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// HostConfig configures the routing host UI.
type HostConfig struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	RemoteAgents []string `yaml:"remote_agents"`
}

// SearchConfig gates the beach agent's search backend. An empty APIKey
// means the agent answers from its built-in catalog; MockMode forces
// that even when a key is set.
type SearchConfig struct {
	APIKey   string `yaml:"api_key"`
	MockMode bool   `yaml:"mock_mode"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the full process configuration.
type Config struct {
	Beach   AgentServerConfig `yaml:"beach"`
	Weather AgentServerConfig `yaml:"weather"`
	Host    HostConfig        `yaml:"host"`
	Search  SearchConfig      `yaml:"search"`
	Log     LogConfig         `yaml:"log"`
}

// Default returns the configuration used when no file or environment
// overrides are present. Ports match the historical sample deployment.
func Default() *Config {
	return &Config{
		Beach:   AgentServerConfig{Host: "localhost", Port: 10003},
		Weather: AgentServerConfig{Host: "localhost", Port: 10001},
		Host: HostConfig{
			Host: "localhost",
			Port: 8084,
			RemoteAgents: []string{
				"http://localhost:10003",
				"http://localhost:10001",
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty, an error when it cannot be read) and
// environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides individual settings from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("BBQ_SEARCH_API_KEY"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := os.Getenv("BBQ_SEARCH_MOCK_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Search.MockMode = b
		}
	}
	if v := os.Getenv("BBQ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
