// Package platform wires the query generator into an MCP server.
package platform

import (
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the complete server configuration.
type Config struct {
	Server Server `yaml:"server"`
	Schema Source `yaml:"schema"`
	// Suggestions are operator-supplied example questions offered by the
	// suggest_queries tool alongside the built-in ones.
	Suggestions []string `yaml:"suggestions"`
}

// Server configures the MCP server identity. Environment variables
// override file values.
type Server struct {
	Name        string `yaml:"name" env:"NLSQL_SERVER_NAME"`
	Version     string `yaml:"version" env:"NLSQL_SERVER_VERSION"`
	Description string `yaml:"description"`
	LogLevel    string `yaml:"log_level" env:"NLSQL_LOG_LEVEL"`
}

// Source configures where the schema description comes from. Inline rows
// win over a file path; with neither set the built-in gallery schema is
// used.
type Source struct {
	Path   string `yaml:"path" env:"NLSQL_SCHEMA_PATH"`
	Inline string `yaml:"inline"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration from a YAML file. ${VAR} patterns are
// expanded from the environment before parsing, and env-tagged fields are
// overridden afterward.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	data = []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	applyDefaults(&cfg)

	return &cfg, nil
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// applyEnvOverrides applies env-tagged overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if err := env.Parse(&cfg.Server); err != nil {
		return err
	}
	return env.Parse(&cfg.Schema)
}

// applyDefaults fills unset fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "nlsql"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "1.0.0"
	}
	if cfg.Server.Description == "" {
		cfg.Server.Description = "Natural-language to SQL for the gallery sales database"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
}

// SchemaText resolves the schema description from the configured source.
func (c *Config) SchemaText(fallback string) (string, error) {
	if c.Schema.Inline != "" {
		return c.Schema.Inline, nil
	}
	if c.Schema.Path != "" {
		data, err := os.ReadFile(c.Schema.Path)
		if err != nil {
			return "", fmt.Errorf("reading schema file: %w", err)
		}
		return string(data), nil
	}
	return fallback, nil
}
