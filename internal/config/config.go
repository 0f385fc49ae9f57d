// =============================================================================
// Shift Reconciliation - Configuration Module
// =============================================================================
//
// This module loads the application configuration: station identity,
// output directories, the seed API endpoint, and the station's fixed
// lists (attendant roster, customer list, expense labels, lubricant
// catalog) together with the default fuel prices.
//
// The configuration file is optional. When it is missing the built-in
// defaults apply, so the CLI works out of the box; every default can be
// overridden per station.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/trinityfuels/shift-recon/internal/domain"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// StationName is printed as the report title row.
	StationName string `yaml:"station_name"`

	// OutputDir is where generated XLSX reports are written.
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is where written reports are copied for long-term
	// storage.
	ArchiveDir string `yaml:"archive_dir"`

	// LogLevel controls logging verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Seed configures the optional seed-data backend.
	Seed SeedConfig `yaml:"seed"`

	// Attendants is the fixed roster shift attendants are picked from.
	Attendants []string `yaml:"attendants"`

	// Customers is the fallback indent autocomplete list, used when
	// the seed fetch is disabled or fails.
	Customers []string `yaml:"customers"`

	// ExpenseLabels are the suggested expense categories.
	ExpenseLabels []string `yaml:"expense_labels"`

	// Lubricants is the fallback lubricant catalog.
	Lubricants []CatalogItem `yaml:"lubricants"`

	// FuelPrices are the fallback per-litre prices.
	FuelPrices PriceConfig `yaml:"fuel_prices"`
}

// SeedConfig configures the seed-data fetch performed at session start.
type SeedConfig struct {
	// Enabled turns the fetch on. Failures are always fail-open.
	Enabled bool `yaml:"enabled"`

	// BaseURL is the station backend root, e.g. "http://localhost:8080/api".
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each seed request. Default: 5.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the configured seed request timeout as a duration.
func (s SeedConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// CatalogItem is one lubricant catalog entry.
type CatalogItem struct {
	Name  string          `yaml:"name"`
	Price decimal.Decimal `yaml:"price"`
}

// PriceConfig holds the default fuel prices.
type PriceConfig struct {
	HSD decimal.Decimal `yaml:"hsd"`
	MS  decimal.Decimal `yaml:"ms"`
}

// Catalog converts the configured lubricant catalog into domain lines
// with quantities at zero, ready to seed a session.
func (c *Config) Catalog() []domain.LubricantLine {
	lines := make([]domain.LubricantLine, 0, len(c.Lubricants))
	for _, item := range c.Lubricants {
		lines = append(lines, domain.LubricantLine{Name: item.Name, Price: item.Price})
	}
	return lines
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file. A missing file is not
// an error: the built-in defaults are returned so the CLI runs without
// any setup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration
// options. The list defaults mirror the station's long-standing
// rosters and catalog.
func applyDefaults(cfg *Config) {
	if cfg.StationName == "" {
		cfg.StationName = "TRINITY FUELS KANNUR"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./reports"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./reports_archive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Seed.TimeoutSeconds == 0 {
		cfg.Seed.TimeoutSeconds = 5
	}
	if len(cfg.Attendants) == 0 {
		cfg.Attendants = []string{
			"Yathish", "Sujan", "James", "John", "Mallika",
			"Likith", "Ravi", "Rahul", "Gopal", "Sharma",
		}
	}
	if len(cfg.Customers) == 0 {
		cfg.Customers = []string{
			"TATA Sales", "TATA Service", "Hysum Steels", "BMW",
			"Kalpavriksha", "TK", "VK", "Anil Noronha", "LPG",
		}
	}
	if len(cfg.ExpenseLabels) == 0 {
		cfg.ExpenseLabels = []string{
			"Auto", "Food", "Jump", "Loading", "Cleaning", "Advance", "Other",
		}
	}
	if len(cfg.Lubricants) == 0 {
		cfg.Lubricants = []CatalogItem{
			{Name: "Engine Oil 1L", Price: decimal.NewFromInt(320)},
			{Name: "Gear Oil 500ml", Price: decimal.NewFromInt(180)},
			{Name: "Coolant 1L", Price: decimal.NewFromInt(210)},
		}
	}
	if cfg.FuelPrices.HSD.IsZero() {
		cfg.FuelPrices.HSD = decimal.RequireFromString("88.20")
	}
	if cfg.FuelPrices.MS.IsZero() {
		cfg.FuelPrices.MS = decimal.RequireFromString("102.34")
	}
}

// validate checks settings that would only fail later and more
// confusingly: the seed endpoint when enabled, and sane prices.
func validate(cfg *Config) error {
	if cfg.Seed.Enabled && cfg.Seed.BaseURL == "" {
		return fmt.Errorf("seed.base_url is required when seed.enabled is true")
	}
	if cfg.FuelPrices.HSD.IsNegative() || cfg.FuelPrices.MS.IsNegative() {
		return fmt.Errorf("fuel prices cannot be negative")
	}
	for _, item := range cfg.Lubricants {
		if item.Name == "" {
			return fmt.Errorf("lubricant catalog entries require a name")
		}
		if !item.Price.IsPositive() {
			return fmt.Errorf("lubricant %q requires a positive price", item.Name)
		}
	}
	return nil
}
