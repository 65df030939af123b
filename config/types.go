package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Jenkins JenkinsConfig `mapstructure:"jenkins"`
	Server  ServerConfig  `mapstructure:"server"`
	Tools   ToolsConfig   `mapstructure:"tools"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// JenkinsConfig holds Jenkins API connection details
type JenkinsConfig struct {
	URL                string        `mapstructure:"url"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	Timeout            time.Duration `mapstructure:"timeout"`
	UserAgent          string        `mapstructure:"user_agent"`
}

// ServerConfig selects the MCP transport
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Address   string `mapstructure:"address"`
}

// ToolsConfig tunes tool output
type ToolsConfig struct {
	ShowErrorDetails bool              `mapstructure:"show_error_details"`
	Descriptions     map[string]string `mapstructure:"descriptions"`
	// FilterCacheSize bounds the compiled filter cache, 0 disables it
	FilterCacheSize  int               `mapstructure:"filter_cache_size"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
