package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotenvFiles are loaded into the process environment before it is parsed.
// Variables already set in the environment win over the files.
var dotenvFiles = []string{".env"}

// parseEnv overlays TASKTRACKER_* variables onto config. Unset variables keep
// the current value. A missing .env file is ignored; a malformed one panics.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
