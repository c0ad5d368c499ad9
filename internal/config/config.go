// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
	"github.com/donaldgifford/tradein-valuator/pkg/valuation"
)

// DefaultFunctionalPenaltyPct is applied when the config does not set one.
const DefaultFunctionalPenaltyPct = 0.0

// Config is the top-level application configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Valuation ValuationConfig `yaml:"valuation"`
	Batch     BatchConfig     `yaml:"batch"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CatalogConfig points at the grading parameter catalog.
type CatalogConfig struct {
	// Path is resolved relative to the config file when not absolute.
	Path string `yaml:"path"`
}

// ValuationConfig holds engine-wide valuation settings.
type ValuationConfig struct {
	FunctionalPenaltyPct *float64             `yaml:"functional_penalty_pct"` // default: 0
	FloorBands           valuation.FloorBands `yaml:"floor_bands"`            // default: standard table
}

// Penalty returns the configured functional penalty.
func (v *ValuationConfig) Penalty() float64 {
	if v.FunctionalPenaltyPct == nil {
		return DefaultFunctionalPenaltyPct
	}
	return *v.FunctionalPenaltyPct
}

// BatchConfig controls batch valuation runs.
type BatchConfig struct {
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// MetricsConfig defines where batch metrics are pushed.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"` // empty disables pushing
	Job            string `yaml:"job"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file in the working directory, when
// present, is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if cfg.Catalog.Path != "" && !filepath.IsAbs(cfg.Catalog.Path) {
		cfg.Catalog.Path = filepath.Join(filepath.Dir(path), cfg.Catalog.Path)
	}

	return cfg, nil
}

// Parse expands environment variables in data and decodes it into a
// validated Config with defaults applied.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyValuationDefaults(&cfg.Valuation)
	applyBatchDefaults(&cfg.Batch)
	applyMetricsDefaults(&cfg.Metrics)
	applyLoggingDefaults(&cfg.Logging)
}

func applyValuationDefaults(v *ValuationConfig) {
	if v.FunctionalPenaltyPct == nil {
		p := DefaultFunctionalPenaltyPct
		v.FunctionalPenaltyPct = &p
	}
	if len(v.FloorBands) == 0 {
		v.FloorBands = valuation.DefaultFloorBands()
	}
}

func applyBatchDefaults(b *BatchConfig) {
	if b.Concurrency == 0 {
		b.Concurrency = 4
	}
	if b.Timeout == 0 {
		b.Timeout = 5 * time.Minute
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Job == "" {
		m.Job = "tradein_valuator"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Catalog.Path == "" {
		errs = append(errs, fmt.Errorf("catalog.path is required"))
	}

	if p := cfg.Valuation.Penalty(); !domain.Finite(p) || p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("valuation.functional_penalty_pct must be in [0,1] (got %v)", p))
	}
	errs = append(errs, validateFloorBands(cfg.Valuation.FloorBands)...)

	if cfg.Batch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("batch.concurrency must be >= 1 (got %d)", cfg.Batch.Concurrency))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}

// validateFloorBands checks that bounds strictly increase and that only the
// last band may be open-ended.
func validateFloorBands(bands valuation.FloorBands) []error {
	var errs []error
	prev := 0.0
	for i, b := range bands {
		if !domain.Finite(b.UpperBound) || !domain.Finite(b.Pct) || !domain.Finite(b.Minimum) {
			errs = append(errs, fmt.Errorf("valuation.floor_bands[%d] must hold finite numbers", i))
			continue
		}
		if b.Pct < 0 || b.Pct > 1 {
			errs = append(errs, fmt.Errorf("valuation.floor_bands[%d].pct must be in [0,1]", i))
		}
		if b.Minimum < 0 {
			errs = append(errs, fmt.Errorf("valuation.floor_bands[%d].minimum must be >= 0", i))
		}
		if b.UpperBound == 0 {
			if i != len(bands)-1 {
				errs = append(errs, fmt.Errorf("valuation.floor_bands[%d] is open-ended but not last", i))
			}
			continue
		}
		if b.UpperBound <= prev {
			errs = append(errs, fmt.Errorf("valuation.floor_bands[%d].upper_bound must increase", i))
		}
		prev = b.UpperBound
	}
	return errs
}
