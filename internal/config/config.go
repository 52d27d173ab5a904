// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for convertxpert.
//
// Configuration is read from ~/.convertxpert/config.toml, falls back to
// built-in defaults, and is overlaid with CONVERTXPERT_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/units"
	"github.com/jeranaias/convertxpert/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete convertxpert configuration.
type Config struct {
	Version string `toml:"version"`

	Converter ConverterConfig `toml:"converter"`
	UI        UIConfig        `toml:"ui"`
	Session   SessionConfig   `toml:"session"`
	Export    ExportConfig    `toml:"export"`
	Log       LogConfig       `toml:"log"`
}

// ConverterConfig holds the selections a new session starts with.
type ConverterConfig struct {
	// DefaultCategory is the category shown on start (e.g. "Length")
	DefaultCategory string `toml:"default_category"`
	// DefaultFrom and DefaultTo are optional starting units; empty means the
	// first and second units of the category
	DefaultFrom string `toml:"default_from"`
	DefaultTo   string `toml:"default_to"`
	// DefaultValue is the starting input value
	DefaultValue float64 `toml:"default_value"`
	// RecentCount is how many history entries are displayed (1-10)
	RecentCount int `toml:"recent_count"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme       string `toml:"theme"`
	CompactMode bool   `toml:"compact_mode"`
}

// SessionConfig controls session lifetime.
type SessionConfig struct {
	// IdleTimeoutSecs ends sessions idle for longer than this (0 = never)
	IdleTimeoutSecs int `toml:"idle_timeout_secs"`
}

// ExportConfig controls history export.
type ExportConfig struct {
	OutputDir string `toml:"output_dir"`
	// Format is "csv", "json", "md" or "xlsx"
	Format string `toml:"format"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error
	Level string `toml:"level"`
	// Format is "text" or "json"
	Format string `toml:"format"`
	// File is the log destination; empty means <config dir>/convertxpert.log
	File string `toml:"file"`
}

// envOverrides lists the environment variables layered over the file.
// Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	DefaultCategory *string  `env:"CONVERTXPERT_DEFAULT_CATEGORY"`
	DefaultValue    *float64 `env:"CONVERTXPERT_DEFAULT_VALUE"`
	Theme           *string  `env:"CONVERTXPERT_THEME"`
	IdleTimeoutSecs *int     `env:"CONVERTXPERT_IDLE_TIMEOUT_SECS"`
	ExportDir       *string  `env:"CONVERTXPERT_EXPORT_DIR"`
	ExportFormat    *string  `env:"CONVERTXPERT_EXPORT_FORMAT"`
	LogLevel        *string  `env:"CONVERTXPERT_LOG_LEVEL"`
	LogFormat       *string  `env:"CONVERTXPERT_LOG_FORMAT"`
	LogFile         *string  `env:"CONVERTXPERT_LOG_FILE"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Converter: ConverterConfig{
			DefaultCategory: units.Length,
			DefaultValue:    1.0,
			RecentCount:     5,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Session: SessionConfig{
			IdleTimeoutSecs: 1800,
		},
		Export: ExportConfig{
			OutputDir: ".",
			Format:    "csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// IdleTimeout returns the session idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory. CONVERTXPERT_HOME overrides
// the default ~/.convertxpert.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CONVERTXPERT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".convertxpert"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the default config file if present, then applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return LoadFromPath(path)
	}
	return finish(Default())
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config %s: %w", path, err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides overlays CONVERTXPERT_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.DefaultCategory != nil {
		c.Converter.DefaultCategory = *o.DefaultCategory
		// Units from the file belong to the old category.
		c.Converter.DefaultFrom = ""
		c.Converter.DefaultTo = ""
	}
	if o.DefaultValue != nil {
		c.Converter.DefaultValue = *o.DefaultValue
	}
	if o.Theme != nil {
		c.UI.Theme = *o.Theme
	}
	if o.IdleTimeoutSecs != nil {
		c.Session.IdleTimeoutSecs = *o.IdleTimeoutSecs
	}
	if o.ExportDir != nil {
		c.Export.OutputDir = *o.ExportDir
	}
	if o.ExportFormat != nil {
		c.Export.Format = *o.ExportFormat
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		c.Log.Format = *o.LogFormat
	}
	if o.LogFile != nil {
		c.Log.File = *o.LogFile
	}
	return nil
}

// SetDefaults fills empty fields and normalizes case-insensitive values.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Converter.DefaultCategory == "" {
		c.Converter.DefaultCategory = d.Converter.DefaultCategory
	}
	if canon, err := units.Default().ResolveCategory(c.Converter.DefaultCategory); err == nil {
		c.Converter.DefaultCategory = canon
		if c.Converter.DefaultFrom != "" {
			if u, err := units.Default().Resolve(canon, c.Converter.DefaultFrom); err == nil {
				c.Converter.DefaultFrom = u
			}
		}
		if c.Converter.DefaultTo != "" {
			if u, err := units.Default().Resolve(canon, c.Converter.DefaultTo); err == nil {
				c.Converter.DefaultTo = u
			}
		}
	}
	if c.Converter.RecentCount == 0 {
		c.Converter.RecentCount = d.Converter.RecentCount
	}

	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}

	if c.Export.OutputDir == "" {
		c.Export.OutputDir = d.Export.OutputDir
	}
	c.Export.Format = strings.ToLower(c.Export.Format)
	if c.Export.Format == "" {
		c.Export.Format = d.Export.Format
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to path.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# convertxpert configuration file\n")
	buf.WriteString("# Environment variables CONVERTXPERT_* override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns ValidateErrors if anything
// is wrong.
func (c *Config) Validate() error {
	var errs ValidateErrors
	reg := units.Default()

	cat, err := reg.Category(c.Converter.DefaultCategory)
	if err != nil {
		errs = append(errs, ValidationError{
			Field:   "converter.default_category",
			Message: fmt.Sprintf("unknown category '%s', must be one of: %s", c.Converter.DefaultCategory, strings.Join(reg.Categories(), ", ")),
		})
	} else {
		for field, unit := range map[string]string{
			"converter.default_from": c.Converter.DefaultFrom,
			"converter.default_to":   c.Converter.DefaultTo,
		} {
			if unit != "" && !cat.Has(unit) {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("unit '%s' is not in %s", unit, cat.Name()),
				})
			}
		}
	}

	if c.Converter.RecentCount < 1 || c.Converter.RecentCount > history.Capacity {
		errs = append(errs, ValidationError{
			Field:   "converter.recent_count",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", history.Capacity, c.Converter.RecentCount),
		})
	}

	if !oneOf(c.UI.Theme, "dark", "light", "auto") {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.Session.IdleTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.idle_timeout_secs",
			Message: "cannot be negative",
		})
	}

	if !oneOf(c.Export.Format, "csv", "json", "md", "xlsx") {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: csv, json, md, xlsx", c.Export.Format),
		})
	}

	if !oneOf(c.Log.Level, "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic") {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}
	if !oneOf(c.Log.Format, "text", "json") {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process configuration, loading it on first access.
// A load failure falls back to defaults and is reported on stderr.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process configuration.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global config so the next Global call
// reloads it.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}

// IsValidation reports whether err came from Validate.
func IsValidation(err error) bool {
	var v ValidateErrors
	return errors.As(err, &v)
}
