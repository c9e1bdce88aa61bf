// Package config loads runtime configuration for the session client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. A .env file in the working directory, then GK_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   server base URL
//	-d string   path of the local session database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "db_path": "session.db",
//	  "request_timeout": "10s",
//	  "session_max_age": "720h",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	GK_SERVER_URL, GK_DB_PATH, GK_REQUEST_TIMEOUT, GK_SESSION_MAX_AGE, GK_LOG_LEVEL
//
// Durations in the environment use time.ParseDuration syntax.
package config
