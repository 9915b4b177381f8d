package config

import (
	"errors"
	"os"
	"path/filepath"

	"bloodbank/pkg/logger"
	"github.com/spf13/viper"
)

const dotenvFilename = ".env"

// loadDotEnv merges the nearest .env file (searching upwards from the working
// directory) into v. Variables already present in the environment win because
// AutomaticEnv lookups take precedence over config file values.
func loadDotEnv(v *viper.Viper, log logger.Logger) error {
	path, err := findDotEnv(dotenvFilename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	log.Info("dotenv: loaded variables", "count", len(v.AllKeys()), "path", path)
	return nil
}

func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
