package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables recognized by the command line.
const (
	EnvDB      = "DROPCATCH_DB"
	EnvStore   = "DROPCATCH_STORE"
	EnvSSHAddr = "DROPCATCH_SSH_ADDR"
	EnvWebAddr = "DROPCATCH_WEB_ADDR"
	EnvConfig  = "DROPCATCH_CONFIG"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values that are already set.
// With no arguments it reads ./.env. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// GetEnv returns the value of key, or fallback when the variable is unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
