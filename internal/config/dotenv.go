package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from path (or ENV_FILE, or .env) into the environment.
// Variables already set win; a missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = envOrDefault(envDotEnvFile, defaultDotEnvFile)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}
