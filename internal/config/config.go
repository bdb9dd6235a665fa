package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"spoilerbot/internal/duration"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration
type Config struct {
	BotToken           string
	PollTimeout        time.Duration
	DefaultExpiry      time.Duration
	SweepInterval      time.Duration
	LogLevel           zapcore.Level
	StatsRetentionDays int
	Database           DatabaseConfig
}

// DatabaseConfig holds database connection settings. Without a database
// usage stats are kept in memory.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "spoilerbot"),
			User:     getEnv("DB_USER", "spoilerbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	var err error
	if cfg.PollTimeout, err = getDuration("POLL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.DefaultExpiry, err = getDuration("DEFAULT_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.StatsRetentionDays, err = getInt("STATS_RETENTION_DAYS", 60); err != nil {
		return nil, err
	}
	if cfg.Database.Enabled, err = getBool("DB_ENABLED", false); err != nil {
		return nil, err
	}

	cfg.LogLevel, err = zapcore.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Enabled && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required when DB_ENABLED is set")
	}
	if cfg.StatsRetentionDays < 1 {
		return nil, fmt.Errorf("STATS_RETENTION_DAYS must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("90s", "1h30m") and the shorthand users
// type after a spoiler title ("7d", "1M").
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		var ok bool
		if d, ok = duration.Parse("/" + value); !ok {
			return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, value)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
