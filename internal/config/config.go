package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultSMSTimeout   = 10 * time.Second
	defaultSendCooldown = 60 * time.Second
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"APP_ENV"`

	// An empty key switches the dispatcher into demo mode.
	SMSRuAPIKey  string `mapstructure:"SMS_RU_API_KEY"`
	SMSRuBaseURL string `mapstructure:"SMS_RU_BASE_URL"`
	SMSRuFrom    string `mapstructure:"SMS_RU_FROM"`
	SMSRuTest    bool   `mapstructure:"SMS_RU_TEST"`
	SMSTimeout   string `mapstructure:"SMS_TIMEOUT"`

	StrictPhoneValidation bool `mapstructure:"STRICT_PHONE_VALIDATION"`

	// Send cooldown; off when RedisAddr is empty.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	SendCooldown  string `mapstructure:"SEND_COOLDOWN"`

	// Dispatch journal; off when empty.
	DSN string `mapstructure:"DB_DSN"`
}

// Load reads .env if present, then the environment. Env vars win.
func Load() (*Config, error) {
	v := viper.New()

	v.AddConfigPath("./")
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// Отсутствующий .env допустим, битый нет
	if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("SMS_RU_API_KEY", "")
	v.SetDefault("SMS_RU_BASE_URL", "https://sms.ru/sms/send")
	v.SetDefault("SMS_RU_FROM", "")
	v.SetDefault("SMS_RU_TEST", false)
	v.SetDefault("SMS_TIMEOUT", defaultSMSTimeout.String())
	v.SetDefault("STRICT_PHONE_VALIDATION", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SEND_COOLDOWN", defaultSendCooldown.String())
	v.SetDefault("DB_DSN", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ServerPort == "" {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}

	if cfg.SMSRuBaseURL == "" {
		return nil, fmt.Errorf("SMS_RU_BASE_URL is required")
	}

	if cfg.RedisDB < 0 {
		return nil, fmt.Errorf("REDIS_DB must not be negative")
	}

	return &cfg, nil
}

// DemoMode reports whether no provider credential is configured.
func (c *Config) DemoMode() bool {
	return c.SMSRuAPIKey == ""
}

// ProviderTimeout parses SMSTimeout. Returns 10s if unset or invalid.
func (c *Config) ProviderTimeout() time.Duration {
	return parseDuration(c.SMSTimeout, defaultSMSTimeout)
}

// Cooldown parses SendCooldown. Returns 60s if unset or invalid.
func (c *Config) Cooldown() time.Duration {
	return parseDuration(c.SendCooldown, defaultSendCooldown)
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
