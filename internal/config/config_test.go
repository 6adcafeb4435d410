package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
service:
  name: gateway
  environment: test
  seed_demo_data: true
server:
  http:
    host: 0.0.0.0
    port: 8080
database:
  host: localhost
  port: 5432
  user: gateway
  password: secret
  name: gateway
  ssl_mode: disable
auth:
  jwt_secret: test-secret
processing:
  test_mode: true
  test_success: false
  test_delay: 250ms
log:
  level: debug
  format: console
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gateway", cfg.Service.Name)
	assert.True(t, cfg.Service.SeedDemoData)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.True(t, cfg.Processing.TestMode)
	assert.False(t, cfg.Processing.TestSuccess)
	assert.Equal(t, 250*time.Millisecond, cfg.Processing.TestDelay)

	// Untouched simulator knobs come back normalized, not zero.
	assert.Equal(t, 5*time.Second, cfg.Processing.MinDelay)
	assert.Equal(t, 10*time.Second, cfg.Processing.MaxDelay)
	assert.InDelta(t, 0.90, cfg.Processing.UPISuccessRate, 1e-9)
	assert.InDelta(t, 0.95, cfg.Processing.CardSuccessRate, 1e-9)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
service:
  name: gateway
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// The simulated outcome defaults to success unless explicitly disabled.
	assert.True(t, cfg.Processing.TestSuccess)
	assert.Equal(t, time.Second, cfg.Processing.TestDelay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestProcessingConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    ProcessingConfig
		expected ProcessingConfig
	}{
		{
			name: "zero values get all defaults",
			input: ProcessingConfig{
				TestSuccess: true,
			},
			expected: ProcessingConfig{
				TestSuccess:     true,
				TestDelay:       time.Second,
				MinDelay:        5 * time.Second,
				MaxDelay:        10 * time.Second,
				UPISuccessRate:  0.90,
				CardSuccessRate: 0.95,
			},
		},
		{
			name: "max below min collapses to min",
			input: ProcessingConfig{
				TestDelay:       time.Second,
				MinDelay:        20 * time.Second,
				MaxDelay:        time.Second,
				UPISuccessRate:  0.5,
				CardSuccessRate: 0.5,
			},
			expected: ProcessingConfig{
				TestDelay:       time.Second,
				MinDelay:        20 * time.Second,
				MaxDelay:        20 * time.Second,
				UPISuccessRate:  0.5,
				CardSuccessRate: 0.5,
			},
		},
		{
			name: "rates above one are replaced",
			input: ProcessingConfig{
				TestDelay:       time.Second,
				MinDelay:        time.Second,
				MaxDelay:        2 * time.Second,
				UPISuccessRate:  1.5,
				CardSuccessRate: -0.1,
			},
			expected: ProcessingConfig{
				TestDelay:       time.Second,
				MinDelay:        time.Second,
				MaxDelay:        2 * time.Second,
				UPISuccessRate:  0.90,
				CardSuccessRate: 0.95,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			cfg.normalize()
			assert.Equal(t, tt.expected, cfg)
		})
	}
}
