package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the session client.
//
// Units: RequestTimeout and SessionMaxAge are time.Duration values.
// A zero SessionMaxAge keeps saved sessions regardless of age.
type Config struct {
	ServerURL      string        `env:"GK_SERVER_URL"`
	DBPath         string        `env:"GK_DB_PATH"`
	RequestTimeout time.Duration `env:"GK_REQUEST_TIMEOUT"`
	SessionMaxAge  time.Duration `env:"GK_SESSION_MAX_AGE"`
	LogLevel       string        `env:"GK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DBPath = "session.db"
	c.RequestTimeout = 10 * time.Second
	c.SessionMaxAge = 30 * 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. Any load error panics.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, dotEnvFile)
	parseFlags(cfg, args)
	return cfg
}
