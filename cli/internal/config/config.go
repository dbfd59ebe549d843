// Package config loads CLI configuration from config files, .env files and
// SQLBRIDGE_* environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem the CLI reads and writes through. Tests swap in
// an in-memory fs.
var AppFs = afero.NewOsFs()

// Config holds the CLI configuration.
type Config struct {
	Dialect     string
	DatabaseURL string
	Debug       bool
}

// Load reads configuration in priority order: SQLBRIDGE_* environment
// variables, then .env.local, then .env, then .sqlbridge.yaml found in the
// working directory, the home directory or ~/.config/sqlbridge.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".sqlbridge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "sqlbridge"))

	viper.SetEnvPrefix("SQLBRIDGE")
	viper.AutomaticEnv()

	viper.SetDefault("dialect", "ansi")
	viper.SetDefault("debug", false)

	// Config file is optional.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		Dialect:     viper.GetString("dialect"),
		DatabaseURL: viper.GetString("database_url"),
		Debug:       viper.GetBool("debug"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

// Save writes the configuration to ~/.config/sqlbridge/.sqlbridge.yaml.
func Save(cfg *Config) (string, error) {
	viper.Set("dialect", cfg.Dialect)
	viper.Set("database_url", cfg.DatabaseURL)
	viper.Set("debug", cfg.Debug)

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".config", "sqlbridge")
	if err := AppFs.MkdirAll(configDir, 0o755); err != nil {
		return "", err
	}
	configFile := filepath.Join(configDir, ".sqlbridge.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", err
	}
	return configFile, nil
}
