package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	defaultEnv             = "prod"
	defaultDBPath          = "./goldcalc.db"
	defaultPort            = "8080"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env             string
	AdminEmail      string
	AdminPassword   string
	SessionSecret   string
	DBPath          string
	Port            string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// IsDev reports whether the app runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

// Load reads the optional .env file and environment variables and returns a
// populated Config.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is ignored and
// variables already present in the environment are never overwritten.
func LoadFrom(dotenvPath string) Config {
	_ = gotenv.Load(dotenvPath)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)

	cfg := Config{
		Env:             v.GetString("APP_ENV"),
		AdminEmail:      v.GetString("ADMIN_EMAIL"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		SessionSecret:   v.GetString("SESSION_SECRET"),
		DBPath:          v.GetString("DB_PATH"),
		Port:            v.GetString("PORT"),
		MetricsEnabled:  v.GetBool("METRICS_ENABLED"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.AdminEmail == "" {
		slog.Warn("ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set; admin login is disabled")
	}

	return cfg
}
