package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	Env                string   `mapstructure:"ENV"`
	DatabaseURL        string   `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32    `mapstructure:"DB_MIN_CONNS"`
	StatementTimeoutMS int      `mapstructure:"STATEMENT_TIMEOUT_MS"`
	ServiceCharge      float64  `mapstructure:"SERVICE_CHARGE"`
	JWTSecret          string   `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes    int      `mapstructure:"TOKEN_TTL_MINUTES"`
	CORSOrigins        []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("STATEMENT_TIMEOUT_MS", 5000)
	v.SetDefault("SERVICE_CHARGE", 500.0)
	v.SetDefault("TOKEN_TTL_MINUTES", 480)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("STATEMENT_TIMEOUT_MS")
	v.BindEnv("SERVICE_CHARGE")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("TOKEN_TTL_MINUTES")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StatementTimeout returns the bounded per-statement timeout for the pool.
func (c *Config) StatementTimeout() time.Duration {
	return time.Duration(c.StatementTimeoutMS) * time.Millisecond
}

// TokenTTL returns the lifetime of issued access tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT secret is required so that real authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV is not development")
	}
	if c.ServiceCharge < 0 {
		return fmt.Errorf("SERVICE_CHARGE must not be negative")
	}
	if c.StatementTimeoutMS < 0 {
		return fmt.Errorf("STATEMENT_TIMEOUT_MS must not be negative")
	}
	return nil
}
