package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Empty(t, config.Endpoint)
	assert.True(t, config.InstallDriver)
	assert.Equal(t, 60*time.Second, config.Timeout)
	assert.Equal(t, "normal", config.Logging.Verbosity)
	assert.False(t, config.IsRemote())
	assert.NoError(t, config.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("no file uses defaults", func(t *testing.T) {
		config, err := Load("", noEnv)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "browserkit.yaml")
		content := `endpoint: ws://browser:3000
install_driver: false
timeout: 15s
logging:
  verbosity: verbose
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := Load(path, noEnv)
		require.NoError(t, err)
		assert.Equal(t, "ws://browser:3000", config.Endpoint)
		assert.False(t, config.InstallDriver)
		assert.Equal(t, 15*time.Second, config.Timeout)
		assert.Equal(t, "verbose", config.Logging.Verbosity)
		assert.True(t, config.IsRemote())
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "browserkit.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timeout: 5s\n"), 0644))

		config, err := Load(path, noEnv)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, config.Timeout)
		assert.True(t, config.InstallDriver)
		assert.Equal(t, "normal", config.Logging.Verbosity)
	})

	t.Run("environment endpoint wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "browserkit.yaml")
		require.NoError(t, os.WriteFile(path, []byte("endpoint: ws://from-file:3000\n"), 0644))

		env := map[string]string{EnvBrowserEndpoint: "wss://chrome.browserless.io?token=abc"}
		config, err := Load(path, func(key string) string { return env[key] })
		require.NoError(t, err)
		assert.Equal(t, "wss://chrome.browserless.io?token=abc", config.Endpoint)
	})

	t.Run("nil getenv reads process environment", func(t *testing.T) {
		t.Setenv(EnvBrowserEndpoint, "ws://env-browser:9222")

		config, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "ws://env-browser:9222", config.Endpoint)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("endpoint: [unterminated\n"), 0644))

		_, err := Load(path, noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectError string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:        "zero timeout",
			modify:      func(c *Config) { c.Timeout = 0 },
			expectError: "timeout must be positive",
		},
		{
			name:        "negative timeout",
			modify:      func(c *Config) { c.Timeout = -time.Second },
			expectError: "timeout must be positive",
		},
		{
			name:        "unknown verbosity",
			modify:      func(c *Config) { c.Logging.Verbosity = "debug" },
			expectError: "invalid logging verbosity",
		},
		{
			name:   "empty verbosity gets default",
			modify: func(c *Config) { c.Logging.Verbosity = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := config.Validate()
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, config.Logging.Verbosity)
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browserkit.yaml")

	config := DefaultConfig()
	config.Endpoint = "ws://browser:3000"
	config.Timeout = 30 * time.Second
	require.NoError(t, config.Save(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := Load(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
