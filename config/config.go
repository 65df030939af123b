package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// Transport names accepted in server.transport
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// envBindings maps config keys to the environment variables that set them
var envBindings = map[string]string{
	"jenkins.url":                  "JENKINS_URL",
	"jenkins.username":             "JENKINS_USERNAME",
	"jenkins.password":             "JENKINS_PASSWORD",
	"jenkins.insecure_skip_verify": "JENKINS_INSECURE_SKIP_VERIFY",
	"jenkins.timeout":              "JENKINS_TIMEOUT",
	"logging.level":                "JENKINS_MCP_LOG_LEVEL",
}

// Load reads the configuration and validates it
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Read loads the configuration from file and environment without validating
// it. A config file is optional unless configPath names one explicitly.
func Read(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jenkins-mcp"))
		}
		v.AddConfigPath("/etc/jenkins-mcp/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Jenkins.URL = strings.TrimRight(strings.TrimSpace(cfg.Jenkins.URL), "/")

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Jenkins defaults
	v.SetDefault("jenkins.insecure_skip_verify", true)
	v.SetDefault("jenkins.timeout", "0s")
	v.SetDefault("jenkins.user_agent", "jenkins-mcp")

	// Server defaults
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("server.address", ":8080")

	// Tool defaults
	v.SetDefault("tools.show_error_details", false)
	v.SetDefault("tools.filter_cache_size", 100)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", isatty.IsTerminal(os.Stderr.Fd()))
}

// validate checks if the configuration is valid and reports every problem
func validate(cfg *Config) error {
	var result *multierror.Error

	if cfg.Jenkins.URL == "" {
		result = multierror.Append(result, fmt.Errorf("jenkins.url is required (set JENKINS_URL)"))
	} else if u, err := url.Parse(cfg.Jenkins.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("jenkins.url must be an absolute http(s) URL: %s", cfg.Jenkins.URL))
	}

	if cfg.Jenkins.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("jenkins.timeout must not be negative"))
	}

	if cfg.Tools.FilterCacheSize < 0 {
		result = multierror.Append(result, fmt.Errorf("tools.filter_cache_size must not be negative"))
	}

	validTransports := map[string]bool{
		TransportStdio: true,
		TransportSSE:   true,
	}
	if !validTransports[cfg.Server.Transport] {
		result = multierror.Append(result, fmt.Errorf("invalid server.transport: %s (must be 'stdio' or 'sse')", cfg.Server.Transport))
	}
	if cfg.Server.Transport == TransportSSE && cfg.Server.Address == "" {
		result = multierror.Append(result, fmt.Errorf("server.address is required for the sse transport"))
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		result = multierror.Append(result, fmt.Errorf("invalid logging level: %s", cfg.Logging.Level))
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		result = multierror.Append(result, fmt.Errorf("invalid logging format: %s", cfg.Logging.Format))
	}

	return result.ErrorOrNil()
}

// HasCredentials reports whether a username or password was configured
func (c *JenkinsConfig) HasCredentials() bool {
	return c.Username != "" || c.Password != ""
}
