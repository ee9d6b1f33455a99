// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/aoemotors/leaddesk/internal/llm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ModeRules = "rules"
	ModeLLM   = "llm"
)

// Config holds application configuration loaded from the environment.
// It is constructed once in main and injected; nothing reads env vars after
// startup.
type Config struct {
	// HTTPAddr is the address the HTTP API listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"LEADDESK_HTTP_ADDR"`
	// APIKey guards /api/v1; empty disables the X-API-KEY check.
	APIKey string `mapstructure:"LEADDESK_API_KEY"`
	// DBDriver selects the storage backend: sqlite or postgres.
	DBDriver string `mapstructure:"LEADDESK_DB_DRIVER"`
	// SQLitePath is the SQLite file path; empty means ~/.leaddesk/leaddesk.db.
	SQLitePath string `mapstructure:"LEADDESK_SQLITE_PATH"`
	// PostgresDSN is the Postgres connection string; required with the postgres driver.
	PostgresDSN string `mapstructure:"LEADDESK_POSTGRES_DSN"`

	// AnalyticsMode selects the question-interpretation strategy: rules or llm.
	AnalyticsMode string `mapstructure:"LEADDESK_ANALYTICS_MODE"`

	// LLMBaseURL is the OpenAI-compatible endpoint base (no trailing /v1).
	LLMBaseURL string `mapstructure:"LEADDESK_LLM_BASE_URL"`
	// LLMAPIKey is sent as a Bearer token when set.
	LLMAPIKey string `mapstructure:"LEADDESK_LLM_API_KEY"`
	// LLMModel is the chat-completions model name.
	LLMModel string `mapstructure:"LEADDESK_LLM_MODEL"`
	// LLMTimeoutMs bounds a single completion call.
	LLMTimeoutMs int `mapstructure:"LEADDESK_LLM_TIMEOUT_MS"`
	// LLMMaxRetries is the number of retries after the first attempt.
	LLMMaxRetries int `mapstructure:"LEADDESK_LLM_MAX_RETRIES"`
	// LLMLogCalls enables one log line per LLM call.
	LLMLogCalls bool `mapstructure:"LEADDESK_LLM_LOG_CALLS"`

	// Outbound email; sending is enabled only when all four are set.
	EmailHost     string `mapstructure:"EMAIL_HOST"`
	EmailPort     int    `mapstructure:"EMAIL_PORT"`
	EmailAddress  string `mapstructure:"EMAIL_ADDRESS"`
	EmailPassword string `mapstructure:"EMAIL_PASSWORD"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI). Env vars
// override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("LEADDESK_HTTP_ADDR", ":8080")
	v.SetDefault("LEADDESK_API_KEY", "")
	v.SetDefault("LEADDESK_DB_DRIVER", DriverSQLite)
	v.SetDefault("LEADDESK_SQLITE_PATH", "")
	v.SetDefault("LEADDESK_POSTGRES_DSN", "")
	v.SetDefault("LEADDESK_ANALYTICS_MODE", ModeRules)
	v.SetDefault("LEADDESK_LLM_BASE_URL", "")
	v.SetDefault("LEADDESK_LLM_API_KEY", "")
	v.SetDefault("LEADDESK_LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("LEADDESK_LLM_TIMEOUT_MS", 60000)
	v.SetDefault("LEADDESK_LLM_MAX_RETRIES", 1)
	v.SetDefault("LEADDESK_LLM_LOG_CALLS", true)
	v.SetDefault("EMAIL_HOST", "")
	v.SetDefault("EMAIL_PORT", 465)
	v.SetDefault("EMAIL_ADDRESS", "")
	v.SetDefault("EMAIL_PASSWORD", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.AnalyticsMode = strings.ToLower(strings.TrimSpace(cfg.AnalyticsMode))

	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return nil, fmt.Errorf("config: LEADDESK_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DBDriver)
	}
	if cfg.DBDriver == DriverPostgres && cfg.PostgresDSN == "" {
		return nil, errors.New("config: LEADDESK_POSTGRES_DSN must be set with the postgres driver")
	}
	if cfg.AnalyticsMode != ModeRules && cfg.AnalyticsMode != ModeLLM {
		return nil, fmt.Errorf("config: LEADDESK_ANALYTICS_MODE must be %q or %q, got %q", ModeRules, ModeLLM, cfg.AnalyticsMode)
	}
	if cfg.AnalyticsMode == ModeLLM && cfg.LLMBaseURL == "" {
		return nil, errors.New("config: LEADDESK_LLM_BASE_URL must be set when LEADDESK_ANALYTICS_MODE=llm")
	}
	if cfg.EmailPort < 0 || cfg.EmailPort > 65535 {
		return nil, errors.New("config: EMAIL_PORT must be a valid port")
	}

	return &cfg, nil
}

// EmailEnabled reports whether outbound email is fully configured.
// All four credentials must be present, matching the dashboard's gate.
func (c *Config) EmailEnabled() bool {
	return c.EmailHost != "" && c.EmailPort != 0 && c.EmailAddress != "" && c.EmailPassword != ""
}

// LLMConfig builds the llm client configuration with per-task defaults.
func (c *Config) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.BaseURL = c.LLMBaseURL
	cfg.APIKey = c.LLMAPIKey
	if c.LLMModel != "" {
		cfg.Model = c.LLMModel
	}
	if c.LLMTimeoutMs > 0 {
		cfg.TimeoutMs = c.LLMTimeoutMs
	}
	if c.LLMMaxRetries >= 0 {
		cfg.MaxRetries = c.LLMMaxRetries
	}
	cfg.LogCalls = c.LLMLogCalls
	return cfg
}

// LLMEnabled reports whether any component may call the completion service.
func (c *Config) LLMEnabled() bool {
	return c.LLMBaseURL != ""
}
