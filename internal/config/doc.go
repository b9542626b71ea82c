// Package config handles configuration loading for tool-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; Default() returns a
// usable configuration when no file exists.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  api_key: "${MCP_API_KEY}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	tools:
//	  command_timeout: "30s"
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8000"
//
// Authentication (empty api_key disables the check):
//
//	auth:
//	  api_key: "${MCP_API_KEY}"
//	  api_key_header: "X-API-Key"
//
// CORS allow-list:
//
//	cors:
//	  origins:
//	    - "http://localhost:8000"
//
// Tool limits:
//
//	tools:
//	  command_timeout: "30s"
//	  max_random_numbers: 100
//
// Request log (empty path disables logging):
//
//	request_log:
//	  path: "/var/lib/tool-gateway/requests.db"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
