package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"titlecatalog/internal/normalizer"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a complete valid configuration.
const validConfigYAML = `
catalog:
  source: "./data/netflix_titles.csv"
  delimiter: ";"
  lazy_quotes: true
  year_range:
    min: 1940
    max: 2020
normalization:
  missing_date_policy: "fixed"
  fixed_year: 2019
  on_error: "skip"
logging:
  level: "debug"
  format: "json"
watch:
  enabled: true
  settle_delay_ms: 500
report:
  format: "json"
  pretty_print: false
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Catalog.Source != "./data/netflix_titles.csv" {
		t.Errorf("Expected source './data/netflix_titles.csv', got '%s'", cfg.Catalog.Source)
	}

	delimiter, err := cfg.Delimiter()
	if err != nil || delimiter != ';' {
		t.Errorf("Expected delimiter ';', got %q (err %v)", delimiter, err)
	}

	if r := cfg.YearRange(); r.Min != 1940 || r.Max != 2020 {
		t.Errorf("Expected year range 1940-2020, got %d-%d", r.Min, r.Max)
	}

	policy := cfg.Policy()
	if policy.MissingDates != normalizer.MissingDateFixed || policy.FixedYear != 2019 || policy.OnError != normalizer.OnErrorSkip {
		t.Errorf("Unexpected policy: %+v", policy)
	}

	if !cfg.LoaderOptions().LazyQuotes {
		t.Error("Expected lazy quotes enabled")
	}

	if cfg.Watch.GetSettleDelay() != 500*time.Millisecond {
		t.Errorf("Expected settle delay 500ms, got %v", cfg.Watch.GetSettleDelay())
	}

	if cfg.Report.PrettyPrint {
		t.Error("Expected pretty_print false to override the default")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	configPath := createTempConfigFile(t, "catalog:\n  source: titles.csv\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Catalog.Delimiter != "," {
		t.Errorf("Expected default delimiter ',', got %q", cfg.Catalog.Delimiter)
	}

	if cfg.Catalog.YearRange.Min != 1925 || cfg.Catalog.YearRange.Max != 2021 {
		t.Errorf("Expected default year range 1925-2021, got %d-%d", cfg.Catalog.YearRange.Min, cfg.Catalog.YearRange.Max)
	}

	if cfg.Normalization.MissingDatePolicy != "absent" {
		t.Errorf("Expected missing_date_policy 'absent', got '%s'", cfg.Normalization.MissingDatePolicy)
	}

	if cfg.Normalization.OnError != "abort" {
		t.Errorf("Expected on_error 'abort', got '%s'", cfg.Normalization.OnError)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Expected logging info/text, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}

	if cfg.Report.Format != "table" || !cfg.Report.PrettyPrint {
		t.Errorf("Expected report table/pretty, got %s/%v", cfg.Report.Format, cfg.Report.PrettyPrint)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Expected defaults for nonexistent file, got %v", err)
	}

	if _, err := cfg.RequireSource(); !errors.Is(err, ErrMissingSource) {
		t.Errorf("Expected ErrMissingSource, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	configPath := createTempConfigFile(t, "normalization:\n  on_error: retry\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrInvalidErrorPolicy) {
		t.Fatalf("Expected ErrInvalidErrorPolicy, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "Empty delimiter",
			mutate:  func(c *Config) { c.Catalog.Delimiter = "" },
			wantErr: ErrInvalidDelimiter,
		},
		{
			name:    "Multi-character delimiter",
			mutate:  func(c *Config) { c.Catalog.Delimiter = "::" },
			wantErr: ErrInvalidDelimiter,
		},
		{
			name:    "Quote delimiter",
			mutate:  func(c *Config) { c.Catalog.Delimiter = `"` },
			wantErr: ErrInvalidDelimiter,
		},
		{
			name:    "Inverted year range",
			mutate:  func(c *Config) { c.Catalog.YearRange.Min = 2022 },
			wantErr: ErrInvalidYearRange,
		},
		{
			name:    "Random imputation",
			mutate:  func(c *Config) { c.Normalization.MissingDatePolicy = "random" },
			wantErr: ErrInvalidMissingDatePolicy,
		},
		{
			name:    "Fixed without year",
			mutate:  func(c *Config) { c.Normalization.MissingDatePolicy = "fixed" },
			wantErr: ErrMissingFixedYear,
		},
		{
			name:    "Invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "Invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
		{
			name:    "Negative settle delay",
			mutate:  func(c *Config) { c.Watch.SettleDelayMs = -1 },
			wantErr: ErrInvalidSettleDelay,
		},
		{
			name:    "Invalid report format",
			mutate:  func(c *Config) { c.Report.Format = "csv" },
			wantErr: ErrInvalidReportFormat,
		},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config should be valid, got %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveConfig(t *testing.T) {
	cfg := Default()
	cfg.Catalog.Source = "titles.csv"
	cfg.Normalization.OnError = "skip"

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Catalog.Source != "titles.csv" || loaded.Normalization.OnError != "skip" {
		t.Errorf("Round trip lost values: %s", loaded)
	}
}
