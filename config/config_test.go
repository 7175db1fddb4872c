package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "hello", "default", "hello"},
		{"uses default when empty", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_STR", tc.envValue)
			assert.Equal(t, tc.expected, getEnvOrDefault("TEST_STR", tc.defaultVal))
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{"parses integer", "42", 42},
		{"uses default for empty", "", 10},
		{"uses default for non-numeric", "abc", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tc.envValue)
			assert.Equal(t, tc.expected, getEnvAsIntOrDefault("TEST_INT", 10))
		})
	}
}

func TestGetEnvAsDurationOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"parses duration", "90s", 90 * time.Second},
		{"uses default for empty", "", time.Minute},
		{"uses default for garbage", "soon", time.Minute},
		{"uses default for negative", "-5m", time.Minute},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_DUR", tc.envValue)
			assert.Equal(t, tc.expected, getEnvAsDurationOrDefault("TEST_DUR", time.Minute))
		})
	}
}

func TestGetEnvAsBoolOrDefault(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, getEnvAsBoolOrDefault("TEST_BOOL", false))

	t.Setenv("TEST_BOOL", "maybe")
	assert.True(t, getEnvAsBoolOrDefault("TEST_BOOL", true))
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MONGO_DB", "REDIS_ADDR", "REDIS_URI", "REDIS_URL", "MAX_RECORDING_MB", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mentorship", cfg.MongoDB)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisAddr)
	assert.Equal(t, int64(512<<20), cfg.MaxRecordingBytes)
	assert.Equal(t, "info", cfg.LogLevel)
}
