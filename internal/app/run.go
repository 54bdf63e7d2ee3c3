// Package app provides the application initialization and wiring.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/zerowrap"
	"github.com/spf13/viper"

	"github.com/bnema/wharf/internal/usecase/config"
)

// loadConfig prepares the viper instance from an explicit path or the
// standard search locations.
func loadConfig(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wharf")
		v.SetConfigType("toml")

		v.AddConfigPath(".")

		if userConfigDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(userConfigDir, "wharf"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".wharf"))
		}

		v.AddConfigPath("/etc/wharf")
	}

	v.SetEnvPrefix("WHARF")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: every value has a default. An
		// explicit --config path that fails to load is not.
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	return nil
}

// initLogger initializes the zerowrap logger from the loaded configuration.
func initLogger(cfg config.Config) (zerowrap.Logger, func(), error) {
	logConfig := zerowrap.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}

	if cfg.LogFile.Enabled {
		logPath := cfg.LogFile.Path
		if logPath == "" {
			logPath = filepath.Join("/var/log/wharf", "wharf.log")
		}

		log, cleanup, err := zerowrap.NewWithFile(logConfig, zerowrap.FileConfig{
			Enabled:    true,
			Path:       logPath,
			MaxSize:    cfg.LogFile.MaxSize,
			MaxBackups: cfg.LogFile.MaxBackups,
			MaxAge:     cfg.LogFile.MaxAge,
			Compress:   true,
		})
		if err != nil {
			return zerowrap.Default(), nil, fmt.Errorf("failed to create logger with file: %w", err)
		}
		return log, cleanup, nil
	}

	return zerowrap.New(logConfig), nil, nil
}
