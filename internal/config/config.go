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

const appName = "campus"

// Store backends.
const (
	StoreNATS   = "nats"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds all configuration values for campus.
type Config struct {
	DataDir           string `mapstructure:"data_dir" yaml:"data_dir"`
	Store             string `mapstructure:"store" yaml:"store"`
	UploadDir         string `mapstructure:"upload_dir" yaml:"upload_dir"`
	UploadBaseURL     string `mapstructure:"upload_base_url" yaml:"upload_base_url"`
	UploadConcurrency int    `mapstructure:"upload_concurrency" yaml:"upload_concurrency"`
	LogLevel          string `mapstructure:"log_level" yaml:"log_level"`
	LogFile           string `mapstructure:"log_file" yaml:"log_file"`
	AssistantAddr     string `mapstructure:"assistant_addr" yaml:"assistant_addr"`
	MetricsAddr       string `mapstructure:"metrics_addr" yaml:"metrics_addr"`
}

// defaults lists every key with its default value. Keys without a
// meaningful default are still listed so they can be bound to ENV.
var defaults = map[string]any{
	"data_dir":           ".campus",
	"store":              StoreNATS,
	"upload_dir":         "",
	"upload_base_url":    "",
	"upload_concurrency": 4,
	"log_level":          "info",
	"log_file":           "",
	"assistant_addr":     "127.0.0.1:7331",
	"metrics_addr":       "",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(appName)

	v.SetEnvPrefix("CAMPUS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, value := range defaults {
		v.SetDefault(key, value)
		// Explicit binding so Unmarshal sees ENV values for int keys too.
		if err := v.BindEnv(key, "CAMPUS_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if globalPath := GlobalPath(); fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	if projectPath := ProjectPath(); fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreNATS, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("store must be one of %s, %s or %s, got %q", StoreNATS, StoreSQLite, StoreMemory, c.Store)
	}
	if c.Store != StoreMemory && c.DataDir == "" {
		return fmt.Errorf("data_dir is required for the %s store", c.Store)
	}
	if c.UploadConcurrency < 0 {
		return fmt.Errorf("upload_concurrency must not be negative, got %d", c.UploadConcurrency)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// UploadPath returns the directory uploaded images are stored in.
// Defaults to <data_dir>/uploads.
func (c *Config) UploadPath() string {
	if c.UploadDir != "" {
		return c.UploadDir
	}
	return filepath.Join(c.DataDir, "uploads")
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/campus/campus.yml or $XDG_CONFIG_HOME/campus/campus.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, appName+".yml")
}

// ProjectPath returns the project-local config path.
// Returns ./campus.yml in the current working directory.
func ProjectPath() string {
	return appName + ".yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
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
