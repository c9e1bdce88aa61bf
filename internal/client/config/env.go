package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// parseEnv loads dotenvPath into the process environment, without
// overriding variables that are already set, then overlays cfg with the
// GK_* variables. Unset variables leave cfg as it was. A missing dotenv
// file is fine; a malformed one or a bad value panics.
func parseEnv(cfg *Config, dotenvPath string) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
