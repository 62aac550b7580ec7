// Package config provides application configuration management.
// It loads configuration from environment variables (and an optional config
// file named by SPENDSYNC_CONFIG) with sensible defaults.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Discord   DiscordConfig
	Email     EmailConfig
	Scheduler SchedulerConfig
	Currency  CurrencyConfig
	Admin     AdminConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	Environment     string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// DatabaseConfig holds ledger store configuration. A postgres:// URL selects
// PostgreSQL, anything else is opened as a SQLite file.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// JWTConfig holds JWT token configuration.
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// DiscordConfig holds the bot credentials used for direct messages.
type DiscordConfig struct {
	BotToken string
}

// EmailConfig holds email service configuration.
type EmailConfig struct {
	ResendAPIKey  string
	FromName      string
	FromEmail     string
	OpsRecipient  string
	WorkerEnabled bool
	PollInterval  time.Duration
	BatchSize     int
}

// SchedulerConfig holds the cron triggers for the background jobs.
type SchedulerConfig struct {
	Enabled          bool
	Timezone         string
	DailySpec        string
	HourlySpec       string
	RunAlertsOnStart bool
}

// CurrencyConfig holds display currency configuration.
type CurrencyConfig struct {
	BaseCurrency    string
	DisplayCurrency string
	RateURL         string
	CacheTTL        time.Duration
	FallbackRate    float64
	RequestTimeout  time.Duration
}

// AdminConfig lists the Discord user IDs with admin rights.
type AdminConfig struct {
	UserIDs []string
}

// Load loads configuration from environment variables.
func Load() *Config {
	v := newViper()

	return &Config{
		Server: ServerConfig{
			Host:            getEnv(v, "SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt(v, "SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration(v, "SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration(v, "SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:     getEnv(v, "ENV", "development"),
			RateLimitMax:    getEnvAsInt(v, "RATE_LIMIT_MAX", 100),
			RateLimitWindow: getEnvAsDuration(v, "RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Database: DatabaseConfig{
			URL:             getEnv(v, "DATABASE_URL", "file:spendsync.db"),
			MaxOpenConns:    getEnvAsInt(v, "DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt(v, "DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration(v, "DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv(v, "REDIS_URL", "redis://localhost:6379/0"),
			Password: getEnv(v, "REDIS_PASSWORD", ""),
			DB:       getEnvAsInt(v, "REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv(v, "JWT_SECRET", "change-me-in-production"),
			AccessTokenExpiry: getEnvAsDuration(v, "JWT_EXPIRY", 24*time.Hour),
		},
		Discord: DiscordConfig{
			BotToken: getEnv(v, "DISCORD_BOT_TOKEN", ""),
		},
		Email: EmailConfig{
			ResendAPIKey:  getEnv(v, "RESEND_API_KEY", ""),
			FromName:      getEnv(v, "RESEND_FROM_NAME", "SpendSync"),
			FromEmail:     getEnv(v, "RESEND_FROM_EMAIL", "onboarding@resend.dev"),
			OpsRecipient:  getEnv(v, "OPS_REPORT_EMAIL", ""),
			WorkerEnabled: getEnvAsBool(v, "EMAIL_WORKER_ENABLED", true),
			PollInterval:  getEnvAsDuration(v, "EMAIL_WORKER_POLL_INTERVAL", 5*time.Second),
			BatchSize:     getEnvAsInt(v, "EMAIL_WORKER_BATCH_SIZE", 10),
		},
		Scheduler: SchedulerConfig{
			Enabled:          getEnvAsBool(v, "SCHEDULER_ENABLED", true),
			Timezone:         getEnv(v, "SCHEDULER_TIMEZONE", "Local"),
			DailySpec:        getEnv(v, "SCHEDULER_DAILY_SPEC", "1 0 * * *"),
			HourlySpec:       getEnv(v, "SCHEDULER_HOURLY_SPEC", "0 * * * *"),
			RunAlertsOnStart: getEnvAsBool(v, "SCHEDULER_RUN_ALERTS_ON_START", true),
		},
		Currency: CurrencyConfig{
			BaseCurrency:    getEnv(v, "CURRENCY_BASE", "USD"),
			DisplayCurrency: getEnv(v, "CURRENCY_DISPLAY", "IDR"),
			RateURL:         getEnv(v, "CURRENCY_RATE_URL", "https://api.frankfurter.app"),
			CacheTTL:        getEnvAsDuration(v, "CURRENCY_CACHE_TTL", time.Hour),
			FallbackRate:    getEnvAsFloat(v, "CURRENCY_FALLBACK_RATE", 16000),
			RequestTimeout:  getEnvAsDuration(v, "CURRENCY_REQUEST_TIMEOUT", 10*time.Second),
		},
		Admin: AdminConfig{
			UserIDs: getEnvAsList(v, "ADMIN_USER_IDS"),
		},
	}
}

// Location resolves the scheduler timezone, falling back to the process
// local zone when the name is unknown.
func (c SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("Unknown scheduler timezone, using local time", "timezone", c.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// IsAdmin reports whether the given user ID is configured as an admin.
func (c AdminConfig) IsAdmin(userID string) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SPENDSYNC_CONFIG", "")
	if path := v.GetString("SPENDSYNC_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("Failed to read config file, using environment only", "path", path, "error", err)
		}
	}

	return v
}

// Helper functions for configuration lookup

func getEnv(v *viper.Viper, key, defaultValue string) string {
	v.SetDefault(key, defaultValue)
	return v.GetString(key)
}

func getEnvAsInt(v *viper.Viper, key string, defaultValue int) int {
	v.SetDefault(key, defaultValue)
	return v.GetInt(key)
}

func getEnvAsFloat(v *viper.Viper, key string, defaultValue float64) float64 {
	v.SetDefault(key, defaultValue)
	return v.GetFloat64(key)
}

func getEnvAsBool(v *viper.Viper, key string, defaultValue bool) bool {
	v.SetDefault(key, defaultValue)
	return v.GetBool(key)
}

func getEnvAsDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	v.SetDefault(key, defaultValue)
	return v.GetDuration(key)
}

func getEnvAsList(v *viper.Viper, key string) []string {
	v.SetDefault(key, "")
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
