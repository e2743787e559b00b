package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEFAULT_ENV_FILENAME = ".env"

// InitEnvironmentVariables loads envFile into the process environment. With an empty
// envFile the default file is loaded when it exists. Variables already set win.
func InitEnvironmentVariables(envFile string) error {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	if envFile == "" {
		if _, err := os.Stat(DEFAULT_ENV_FILENAME); os.IsNotExist(err) {
			log.Debugf("no %s file found, using process environment", DEFAULT_ENV_FILENAME)
			return nil
		}

		envFile = DEFAULT_ENV_FILENAME
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}
