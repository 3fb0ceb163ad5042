// README: Config loader with env overrides and defaults (viper).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration values. Empty API keys select the matching
// degraded behavior instead of failing startup: no Gemini key means the
// assistant asks for every booking detail in turn, no Maps key skips city
// canonicalization.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// SessionTTLMin bounds how long a suspended conversation is kept.
	SessionTTLMin int `mapstructure:"SESSION_TTL_MIN"`

	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GoogleMapsAPIKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`
}

// Load reads config.yaml (current dir or ./config) when present, with
// environment variables taking precedence.
func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("SESSION_TTL_MIN", 120)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")

	// A missing file is fine; env-only deployments are the common case.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
