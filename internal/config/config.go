// Package config provides configuration management for the catalog service.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"titlecatalog/internal/aggregate"
	"titlecatalog/internal/loader"
	"titlecatalog/internal/normalizer"
)

// Configuration validation errors.
var (
	ErrInvalidDelimiter         = errors.New("catalog.delimiter must be a single character other than a quote or newline")
	ErrInvalidYearRange         = errors.New("catalog.year_range.min cannot exceed catalog.year_range.max")
	ErrInvalidMissingDatePolicy = errors.New("normalization.missing_date_policy must be 'absent' or 'fixed'")
	ErrMissingFixedYear         = errors.New("normalization.fixed_year is required when missing_date_policy is 'fixed'")
	ErrInvalidErrorPolicy       = errors.New("normalization.on_error must be 'abort' or 'skip'")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidSettleDelay       = errors.New("watch.settle_delay_ms must be non-negative")
	ErrInvalidReportFormat      = errors.New("report.format must be 'table' or 'json'")
	ErrMissingSource            = errors.New("catalog.source is required")
)

// Config represents the complete catalog configuration.
type Config struct {
	Catalog       CatalogConfig       `yaml:"catalog"`
	Normalization NormalizationConfig `yaml:"normalization"`
	Logging       LoggingConfig       `yaml:"logging"`
	Watch         WatchConfig         `yaml:"watch"`
	Report        ReportConfig        `yaml:"report"`
}

// CatalogConfig describes the source file and the aggregation range.
type CatalogConfig struct {
	Source     string          `yaml:"source"`
	Delimiter  string          `yaml:"delimiter" default:","`
	YearRange  YearRangeConfig `yaml:"year_range"`
	LazyQuotes bool            `yaml:"lazy_quotes"`
}

// YearRangeConfig bounds the per-year tables.
type YearRangeConfig struct {
	Min int `yaml:"min" default:"1925"`
	Max int `yaml:"max" default:"2021"`
}

// NormalizationConfig defines how missing and malformed values are handled.
type NormalizationConfig struct {
	MissingDatePolicy string `yaml:"missing_date_policy" default:"absent"`
	OnError           string `yaml:"on_error" default:"abort"`
	FixedYear         int    `yaml:"fixed_year"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"text"`
}

// WatchConfig controls reloading when the source file changes.
type WatchConfig struct {
	SettleDelayMs int  `yaml:"settle_delay_ms" default:"250"`
	Enabled       bool `yaml:"enabled"`
}

// ReportConfig controls summary output.
type ReportConfig struct {
	Format      string `yaml:"format" default:"table"`
	PrettyPrint bool   `yaml:"pretty_print" default:"true"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// Only reachable with malformed default tags.
		panic(fmt.Sprintf("config defaults: %v", err))
	}

	return cfg
}

// LoadConfig loads configuration from a YAML file. A missing file yields the defaults.
func LoadConfig(filepath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.Delimiter(); err != nil {
		return err
	}

	if c.Catalog.YearRange.Min > c.Catalog.YearRange.Max {
		return fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, c.Catalog.YearRange.Min, c.Catalog.YearRange.Max)
	}

	switch normalizer.MissingDatePolicy(c.Normalization.MissingDatePolicy) {
	case normalizer.MissingDateAbsent:
	case normalizer.MissingDateFixed:
		if c.Normalization.FixedYear <= 0 {
			return ErrMissingFixedYear
		}
	default:
		return ErrInvalidMissingDatePolicy
	}

	switch normalizer.ErrorPolicy(c.Normalization.OnError) {
	case normalizer.OnErrorAbort, normalizer.OnErrorSkip:
	default:
		return ErrInvalidErrorPolicy
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if c.Watch.SettleDelayMs < 0 {
		return ErrInvalidSettleDelay
	}

	if c.Report.Format != "table" && c.Report.Format != "json" {
		return ErrInvalidReportFormat
	}

	return nil
}

// Delimiter returns the configured field delimiter as a rune.
func (c *Config) Delimiter() (rune, error) {
	d := c.Catalog.Delimiter
	if utf8.RuneCountInString(d) != 1 {
		return 0, ErrInvalidDelimiter
	}

	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, ErrInvalidDelimiter
	}

	return r, nil
}

// LoaderOptions returns the options for the raw table loader.
func (c *Config) LoaderOptions() loader.Options {
	delimiter, err := c.Delimiter()
	if err != nil {
		delimiter = ','
	}

	return loader.Options{
		Delimiter:  delimiter,
		LazyQuotes: c.Catalog.LazyQuotes,
	}
}

// Policy returns the normalization policy.
func (c *Config) Policy() normalizer.Policy {
	return normalizer.Policy{
		MissingDates: normalizer.MissingDatePolicy(c.Normalization.MissingDatePolicy),
		OnError:      normalizer.ErrorPolicy(c.Normalization.OnError),
		FixedYear:    c.Normalization.FixedYear,
	}
}

// YearRange returns the aggregation year range.
func (c *Config) YearRange() aggregate.YearRange {
	return aggregate.YearRange{Min: c.Catalog.YearRange.Min, Max: c.Catalog.YearRange.Max}
}

// GetSettleDelay returns the watcher settle delay.
func (c *WatchConfig) GetSettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// RequireSource returns the source path, or ErrMissingSource when none is configured.
func (c *Config) RequireSource() (string, error) {
	if c.Catalog.Source == "" {
		return "", ErrMissingSource
	}

	return c.Catalog.Source, nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Source: %s, Years: %d-%d, MissingDates: %s, OnError: %s}",
		c.Catalog.Source,
		c.Catalog.YearRange.Min,
		c.Catalog.YearRange.Max,
		c.Normalization.MissingDatePolicy,
		c.Normalization.OnError,
	)
}
