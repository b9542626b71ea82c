// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:9000"

auth:
  api_key: "secret"
  api_key_header: "X-Gateway-Key"

cors:
  origins:
    - "http://example.com"

tools:
  command_timeout: "45s"
  max_random_numbers: 50

request_log:
  path: "./requests.db"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:9000" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:9000")
	}
	if cfg.Auth.APIKey != "secret" {
		t.Errorf("Auth.APIKey = %q, want %q", cfg.Auth.APIKey, "secret")
	}
	if cfg.Auth.APIKeyHeader != "X-Gateway-Key" {
		t.Errorf("Auth.APIKeyHeader = %q, want %q", cfg.Auth.APIKeyHeader, "X-Gateway-Key")
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "http://example.com" {
		t.Errorf("CORS.Origins = %v, want [http://example.com]", cfg.CORS.Origins)
	}
	if cfg.Tools.CommandTimeout != 45*time.Second {
		t.Errorf("Tools.CommandTimeout = %v, want %v", cfg.Tools.CommandTimeout, 45*time.Second)
	}
	if cfg.Tools.MaxRandomNumbers != 50 {
		t.Errorf("Tools.MaxRandomNumbers = %d, want 50", cfg.Tools.MaxRandomNumbers)
	}
	if cfg.RequestLog.Path != "./requests.db" {
		t.Errorf("RequestLog.Path = %q, want %q", cfg.RequestLog.Path, "./requests.db")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8000"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.APIKeyHeader != DefaultAPIKeyHeader {
		t.Errorf("Auth.APIKeyHeader = %q, want %q", cfg.Auth.APIKeyHeader, DefaultAPIKeyHeader)
	}
	if cfg.Tools.CommandTimeout != DefaultCommandTimeout {
		t.Errorf("Tools.CommandTimeout = %v, want %v", cfg.Tools.CommandTimeout, DefaultCommandTimeout)
	}
	if cfg.Tools.MaxRandomNumbers != DefaultMaxRandomNumbers {
		t.Errorf("Tools.MaxRandomNumbers = %d, want %d", cfg.Tools.MaxRandomNumbers, DefaultMaxRandomNumbers)
	}
	if len(cfg.CORS.Origins) != len(DefaultCORSOrigins) {
		t.Errorf("CORS.Origins = %v, want defaults %v", cfg.CORS.Origins, DefaultCORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() config does not validate: %v", err)
	}
	if cfg.Server.HTTPAddr == "" {
		t.Error("Default() left Server.HTTPAddr empty")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_GATEWAY_KEY", "from-env")

	configPath := writeConfig(t, `
auth:
  api_key: "${TEST_GATEWAY_KEY}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.APIKey != "from-env" {
		t.Errorf("Auth.APIKey = %q, want %q", cfg.Auth.APIKey, "from-env")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
tools:
  command_timeout: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "command_timeout") {
		t.Errorf("error %q does not mention command_timeout", err)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	configPath := writeConfig(t, `
logging:
  level: "verbose"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid log level, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}
