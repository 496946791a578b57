package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Load reads the app config from configDir, applying defaults first. A
// missing config file is fine; everything has a default. Gameplay tuning
// does not live here; that is prefab data with its own live reload.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("debug", false)

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.vsync", true)

	viper.SetDefault("input.mouseSensitivity", 1.0)

	viper.SetConfigName("3cs")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}
