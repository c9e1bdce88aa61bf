package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gksession/internal/flagx"
	"github.com/dmitrijs2005/gksession/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations go through timex.Duration, so "10s" and integer nanoseconds
// both work.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	DBPath         string          `json:"db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionMaxAge  *timex.Duration `json:"session_max_age"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c or -config in args.
// Keys missing from the file leave cfg as it was. Read and decode errors
// panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionMaxAge != nil {
		cfg.SessionMaxAge = jc.SessionMaxAge.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
