package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var allKeys = []string{
	"BOT_TOKEN", "POLL_TIMEOUT", "DEFAULT_EXPIRY", "SWEEP_INTERVAL", "LOG_LEVEL",
	"STATS_RETENTION_DAYS", "DB_ENABLED", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "unset uses default", value: "", expected: time.Minute},
		{name: "go duration", value: "1h30m", expected: 90 * time.Minute},
		{name: "shorthand days", value: "7d", expected: 7 * 24 * time.Hour},
		{name: "shorthand months", value: "1M", expected: 30 * 24 * time.Hour},
		{name: "garbage", value: "soon", wantErr: true},
		{name: "zero", value: "0s", wantErr: true},
		{name: "negative", value: "-5s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)

			d, err := getDuration("TEST_DURATION", time.Minute)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingBotToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, 10*time.Second, cfg.PollTimeout)
	assert.Equal(t, 24*time.Hour, cfg.DefaultExpiry)
	assert.Equal(t, time.Second, cfg.SweepInterval)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 60, cfg.StatsRetentionDays)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "spoilerbot", cfg.Database.Name)
	assert.Equal(t, "spoilerbot", cfg.Database.User)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("POLL_TIMEOUT", "30s")
	t.Setenv("DEFAULT_EXPIRY", "2d")
	t.Setenv("SWEEP_INTERVAL", "250ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STATS_RETENTION_DAYS", "7")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.PollTimeout)
	assert.Equal(t, 48*time.Hour, cfg.DefaultExpiry)
	assert.Equal(t, 250*time.Millisecond, cfg.SweepInterval)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 7, cfg.StatsRetentionDays)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		contains string
	}{
		{name: "db enabled without password", key: "DB_ENABLED", value: "true", contains: "DB_PASSWORD"},
		{name: "bad db flag", key: "DB_ENABLED", value: "maybe", contains: "DB_ENABLED"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud", contains: "LOG_LEVEL"},
		{name: "bad expiry", key: "DEFAULT_EXPIRY", value: "forever", contains: "DEFAULT_EXPIRY"},
		{name: "bad retention", key: "STATS_RETENTION_DAYS", value: "sixty", contains: "STATS_RETENTION_DAYS"},
		{name: "zero retention", key: "STATS_RETENTION_DAYS", value: "0", contains: "STATS_RETENTION_DAYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "test_token")
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_DatabaseDisabledNeedsNoPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Database.Enabled)
}
