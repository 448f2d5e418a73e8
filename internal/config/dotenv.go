package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv populates the process environment from a .env file in the
// working directory. Variables that are already set are not overridden.
// Nothing is loaded when APP_ENV is "production"; a missing file is not an
// error.
func loadDotEnv() error {
	if os.Getenv("APP_ENV") == "production" {
		return nil
	}

	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading .env file: %w", err)
	}

	return nil
}
