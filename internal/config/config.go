package config

import (
	"os"
	"path/filepath"

	"fjacquet/mocktest/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent. Variables already set in the environment win.
// It returns the file that was loaded, or "" when none was found.
func LoadEnv(logger logging.Logger) string {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			if logger != nil {
				logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, envFile))
			}
			return ""
		}
		if logger != nil {
			logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
		}
		return envFile
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
