package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the gbsav configuration file (~/.config/gbsav/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	ExportDir string `yaml:"export_dir"`
	Backup    *bool  `yaml:"backup"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress  string   `yaml:"server_address"`
	MaxUploadBytes *int64   `yaml:"max_upload_bytes"`
	RateLimit      *float64 `yaml:"rate_limit"`

	path string
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gbsav", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	c.path = path
	return c, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyImportConfig applies config file defaults to import command variables
// when the corresponding flag was not explicitly set.
func applyImportConfig(c *cli.Command, cfg Config, backup *bool) {
	if cfg.Backup != nil && !c.IsSet("backup") {
		*backup = *cfg.Backup
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxUpload *int64, rateLimit *float64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxUploadBytes != nil && !c.IsSet("max-upload") {
		*maxUpload = *cfg.MaxUploadBytes
	}
	if cfg.RateLimit != nil && !c.IsSet("rate") {
		*rateLimit = *cfg.RateLimit
	}
}
