package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvBrowserEndpoint names the environment variable holding a remote CDP
// endpoint. When set it takes precedence over the config file.
const EnvBrowserEndpoint = "IB_BROWSER_ENDPOINT"

const (
	defaultTimeout   = 60 * time.Second
	defaultVerbosity = "normal"
)

// Config holds the settings for a provisioning run.
type Config struct {
	// Endpoint is the remote CDP endpoint. Empty means launch locally.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// InstallDriver downloads the Playwright driver and Chromium before use.
	InstallDriver bool `yaml:"install_driver" json:"install_driver"`

	// Timeout bounds how long the caller waits for a browser.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Verbosity controls logging output: quiet, normal, verbose
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		InstallDriver: true,
		Timeout:       defaultTimeout,
		Logging: LoggingConfig{
			Verbosity: defaultVerbosity,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and finally the environment read through getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if endpoint := getenv(EnvBrowserEndpoint); endpoint != "" {
		config.Endpoint = endpoint
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if c.Logging.Verbosity == "" {
		c.Logging.Verbosity = defaultVerbosity
	}

	validLevels := map[string]bool{
		"quiet":   true,
		"normal":  true,
		"verbose": true,
	}
	if !validLevels[c.Logging.Verbosity] {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', or 'verbose')", c.Logging.Verbosity)
	}

	return nil
}

// IsRemote reports whether the run attaches to a remote browser.
func (c *Config) IsRemote() bool {
	return c.Endpoint != ""
}

// Save writes the configuration as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
