// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const fileName = "onboardr.yml"

// Config holds all configuration values for onboardr.
type Config struct {
	AppName          string `mapstructure:"app_name" yaml:"app_name"`
	BaseURL          string `mapstructure:"base_url" yaml:"base_url"`
	DataDir          string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel         string `mapstructure:"log_level" yaml:"log_level"`
	LogFile          string `mapstructure:"log_file" yaml:"log_file"`
	AppsStep         bool   `mapstructure:"apps_step" yaml:"apps_step"`
	AdminMinPassword int    `mapstructure:"admin_min_password" yaml:"admin_min_password"`
}

// defaults is the single source for default values.
var defaults = map[string]any{
	"app_name":           "Cal",
	"base_url":           "http://localhost:3000",
	"data_dir":           ".onboardr",
	"log_level":          "info",
	"log_file":           "",
	"apps_step":          true,
	"admin_min_password": 15,
}

// Default returns a config populated with default values.
func Default() *Config {
	return &Config{
		AppName:          defaults["app_name"].(string),
		BaseURL:          defaults["base_url"].(string),
		DataDir:          defaults["data_dir"].(string),
		LogLevel:         defaults["log_level"].(string),
		LogFile:          defaults["log_file"].(string),
		AppsStep:         defaults["apps_step"].(bool),
		AdminMinPassword: defaults["admin_min_password"].(int),
	}
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("onboardr")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Setup ENV binding with ONBOARDR_ prefix
	v.SetEnvPrefix("ONBOARDR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so bool/int values from ENV are parsed
	for key := range defaults {
		if err := v.BindEnv(key, "ONBOARDR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if c.AdminMinPassword < 7 {
		return fmt.Errorf("admin_min_password must be at least 7, got %d", c.AdminMinPassword)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/onboardr/onboardr.yml or $XDG_CONFIG_HOME/onboardr/onboardr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "onboardr", fileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "onboardr", fileName)
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return fileName
}

// Marshal renders cfg as it would be written to disk.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	return WriteFile(GlobalPath(), cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return WriteFile(ProjectPath(), cfg)
}

// WriteFile writes the config to path, creating parent directories.
func WriteFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
