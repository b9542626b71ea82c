// ABOUTME: Configuration loading and parsing for tool-gateway
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tool-gateway configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	CORS       CORSConfig       `yaml:"cors"`
	Tools      ToolsConfig      `yaml:"tools"`
	RequestLog RequestLogConfig `yaml:"request_log"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// AuthConfig holds API key authentication configuration.
// An empty APIKey disables the check entirely.
type AuthConfig struct {
	APIKey       string `yaml:"api_key"`
	APIKeyHeader string `yaml:"api_key_header"`
}

// CORSConfig holds the CORS allow-list.
type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// ToolsConfig holds tool execution limits
type ToolsConfig struct {
	CommandTimeout   time.Duration `yaml:"-"`
	MaxRandomNumbers int           `yaml:"max_random_numbers"`

	// Raw string value for YAML unmarshaling
	CommandTimeoutRaw string `yaml:"command_timeout"`
}

// RequestLogConfig holds request/response log configuration.
// An empty Path disables request logging.
type RequestLogConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults mirrored from the server's documented behavior.
const (
	DefaultHTTPAddr         = "0.0.0.0:8000"
	DefaultAPIKeyHeader     = "X-API-Key"
	DefaultCommandTimeout   = 30 * time.Second
	DefaultMaxRandomNumbers = 100
)

// DefaultCORSOrigins are used when no cors.origins are configured.
var DefaultCORSOrigins = []string{
	"http://localhost:8000",
	"http://127.0.0.1:8000",
}

// Default returns a configuration with all defaults applied, suitable for
// running without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills in zero-valued fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
		if envPort := os.Getenv("PORT"); envPort != "" {
			c.Server.HTTPAddr = "0.0.0.0:" + envPort
		}
	}
	if c.Auth.APIKey == "" {
		c.Auth.APIKey = os.Getenv("MCP_API_KEY")
	}
	if c.Auth.APIKeyHeader == "" {
		c.Auth.APIKeyHeader = DefaultAPIKeyHeader
	}
	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = append([]string(nil), DefaultCORSOrigins...)
	}
	if c.Tools.CommandTimeout == 0 {
		c.Tools.CommandTimeout = DefaultCommandTimeout
	}
	if c.Tools.MaxRandomNumbers == 0 {
		c.Tools.MaxRandomNumbers = DefaultMaxRandomNumbers
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Tools.CommandTimeout < 0 {
		return fmt.Errorf("tools.command_timeout must not be negative")
	}

	if c.Tools.MaxRandomNumbers < 1 {
		return fmt.Errorf("tools.max_random_numbers must be at least 1")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json (got %q)", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Tools.CommandTimeoutRaw != "" {
		cfg.Tools.CommandTimeout, err = time.ParseDuration(cfg.Tools.CommandTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing command_timeout %q: %w", cfg.Tools.CommandTimeoutRaw, err)
		}
	}

	return nil
}
