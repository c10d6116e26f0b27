package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"depman/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/depman"
	configFileName = "config.yaml"
)

// osUserHomeDir is a variable so tests can replace it.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns the user configuration directory,
// ~/.config/depman.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}

	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from the specified directory on top of the
// defaults. A missing file is not an error.
func LoadConfig(configPath string) (DepmanConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		logging.Info("ConfigLoader", "Error loading config.yaml from %s: %s", configFilePath, err)
		return DepmanConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		// config malformed
		return DepmanConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	if err := Validate(config); err != nil {
		return DepmanConfig{}, fmt.Errorf("invalid config %s: %w", configFilePath, err)
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// LoadDefaultConfig loads the configuration from the user configuration
// directory, falling back to defaults when the home directory is unknown.
func LoadDefaultConfig() (DepmanConfig, error) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		logging.Warn("ConfigLoader", "%v, using defaults", err)
		return GetDefaultConfig(), nil
	}
	return LoadConfig(path)
}
