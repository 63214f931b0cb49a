package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName    = "Hospital Management System"
	AppVersion = "1.0.0"
)

type Config struct {
	Env      string `mapstructure:"HMS_ENV"`
	DataDir  string `mapstructure:"HMS_DATA_DIR"`
	LogFile  string `mapstructure:"HMS_LOG_FILE"`
	LogLevel string `mapstructure:"HMS_LOG_LEVEL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("HMS_ENV", "development")
	v.SetDefault("HMS_DATA_DIR", "data")
	v.SetDefault("HMS_LOG_FILE", filepath.Join("logs", "hospital.log"))
	v.SetDefault("HMS_LOG_LEVEL", "info")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("HMS_ENV")
	v.BindEnv("HMS_DATA_DIR")
	v.BindEnv("HMS_LOG_FILE")
	v.BindEnv("HMS_LOG_LEVEL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// EnsureDirs creates the data and log directories if they are missing.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, filepath.Dir(c.LogFile)} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CollectionPath returns the JSON file path for a named collection,
// e.g. CollectionPath("patients") -> <data>/patients.json.
func (c *Config) CollectionPath(name string) string {
	return filepath.Join(c.DataDir, name+".json")
}
