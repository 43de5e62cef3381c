// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"docverify/internal/ocr"
	"docverify/internal/paths"
	"docverify/internal/validators/arl"
	"docverify/internal/validators/cedula"
	"docverify/internal/validators/eps"
	"docverify/internal/validators/pension"
	"docverify/internal/validators/transporter"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings for the command line
	Defaults Defaults `yaml:"defaults"`

	// Recognition engine settings
	Recognition ocr.Config `yaml:"recognition"`

	// Per-document thresholds, languages and keyword lists
	Documents Documents `yaml:"documents"`

	// Upload server settings
	Web Web `yaml:"web"`
}

// Defaults holds the command line defaults.
type Defaults struct {
	Format  string        `yaml:"format"`
	NoColor bool          `yaml:"no_color"`
	Debug   bool          `yaml:"debug"`
	Verbose bool          `yaml:"verbose"`
	Timeout time.Duration `yaml:"timeout"`
}

// Documents holds one section per document type.
type Documents struct {
	Cedula      cedula.Config            `yaml:"cedula"`
	EPS         eps.Config               `yaml:"eps"`
	ARL         arl.Config               `yaml:"arl"`
	Pension     pension.Config           `yaml:"pension"`
	Proteccion  pension.ProteccionConfig `yaml:"proteccion"`
	Transporter transporter.Config       `yaml:"transporter"`
}

// Web holds the upload server settings.
type Web struct {
	Port           int           `yaml:"port"`
	MaxUploadMB    int64         `yaml:"max_upload_mb"`
	// RequestTimeout bounds the recognition of one upload. Zero means no limit.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// UploadDir receives uploaded files while they are validated. Empty
	// means the system temporary directory.
	UploadDir     string `yaml:"upload_dir"`
	AllowedOrigin string `yaml:"allowed_origin"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: Defaults{
			Format:  "text",
			Timeout: 2 * time.Minute,
		},
		Recognition: ocr.DefaultConfig(),
		Documents: Documents{
			Cedula:      cedula.DefaultConfig(),
			EPS:         eps.DefaultConfig(),
			ARL:         arl.DefaultConfig(),
			Pension:     pension.DefaultConfig(),
			Proteccion:  pension.DefaultProteccionConfig(),
			Transporter: transporter.DefaultConfig(),
		},
		Web: Web{
			Port:           5000,
			MaxUploadMB:    32,
			RequestTimeout: 3 * time.Minute,
			AllowedOrigin:  "*",
		},
	}
}

// LoadConfig loads configuration from the specified file path. Settings
// absent from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in the standard locations
func FindConfigFile() string {
	if env := os.Getenv("DOCVERIFY_CONFIG"); env != "" && fileExists(env) {
		return env
	}

	// Project-specific config in the current directory
	for _, name := range []string{"docverify.yaml", "docverify.yml", ".docverify.yaml", ".docverify.yml"} {
		if fileExists(name) {
			return name
		}
	}

	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Defaults.Timeout < 0 {
		return fmt.Errorf("defaults.timeout must not be negative")
	}
	if err := c.Recognition.Validate(); err != nil {
		return err
	}

	docs := []interface{ Validate() error }{
		c.Documents.Cedula,
		c.Documents.EPS,
		c.Documents.ARL,
		c.Documents.Pension,
		c.Documents.Proteccion,
		c.Documents.Transporter,
	}
	for _, d := range docs {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port must be between 0 and 65535, got %d", c.Web.Port)
	}
	if c.Web.MaxUploadMB <= 0 {
		return fmt.Errorf("web.max_upload_mb must be positive, got %d", c.Web.MaxUploadMB)
	}
	if c.Web.RequestTimeout < 0 {
		return fmt.Errorf("web.request_timeout must not be negative")
	}
	return paths.ValidatePath(c.Web.UploadDir)
}

// EffectiveUploadDir returns where uploads are stored.
func (c *Config) EffectiveUploadDir() string {
	if c.Web.UploadDir != "" {
		return c.Web.UploadDir
	}
	return paths.GetTempDir()
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns the default configuration
// together with the error so callers can warn about it.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}
