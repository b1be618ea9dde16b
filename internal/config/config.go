package config

// Configuration loading and validation for svccat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/errors"
	"github.com/brightwell/svccat/internal/logging"
	"github.com/brightwell/svccat/internal/query"
)

// FileName is the config file name searched for without an extension.
const FileName = "svccat"

// EnvPrefix prefixes environment overrides, e.g. SVCCAT_LOG_LEVEL.
const EnvPrefix = "SVCCAT"

// CatalogConfig locates the catalog data files. Empty paths fall back to a
// search for catalogs/<name> above the working directory, then to the
// built-in data.
type CatalogConfig struct {
	Path             string `mapstructure:"path" yaml:"path"`
	TestimonialsPath string `mapstructure:"testimonials_path" yaml:"testimonials_path"`
}

// BrowseConfig holds the initial query and view mode.
type BrowseConfig struct {
	Sort   string `mapstructure:"sort" yaml:"sort"`
	Filter string `mapstructure:"filter" yaml:"filter"`
	View   string `mapstructure:"view" yaml:"view"`
}

// ROIConfig tunes the ROI calculator.
type ROIConfig struct {
	SavingsRate float64 `mapstructure:"savings_rate" yaml:"savings_rate"`
}

// AnalyticsConfig controls event tracking.
type AnalyticsConfig struct {
	Enabled         bool    `mapstructure:"enabled" yaml:"enabled"`
	EventsPerSecond float64 `mapstructure:"events_per_second" yaml:"events_per_second"`
	Burst           int     `mapstructure:"burst" yaml:"burst"`
	// CSVFile and JSONFile, when set, receive a copy of every event.
	CSVFile  string `mapstructure:"csv_file" yaml:"csv_file"`
	JSONFile string `mapstructure:"json_file" yaml:"json_file"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Config is the full application configuration.
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog" yaml:"catalog"`
	Browse    BrowseConfig    `mapstructure:"browse" yaml:"browse"`
	ROI       ROIConfig       `mapstructure:"roi" yaml:"roi"`
	Analytics AnalyticsConfig `mapstructure:"analytics" yaml:"analytics"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`

	// Source is the config file that was read, or "" when none was found.
	Source string `mapstructure:"-" yaml:"-"`
}

var defaults = map[string]any{
	"catalog.path":                "",
	"catalog.testimonials_path":   "",
	"browse.sort":                 string(query.SortPopularity),
	"browse.filter":               string(query.FilterAll),
	"browse.view":                 string(browse.ViewGrid),
	"roi.savings_rate":            0.30,
	"analytics.enabled":           true,
	"analytics.events_per_second": 5.0,
	"analytics.burst":             10,
	"analytics.csv_file":          "",
	"analytics.json_file":         "",
	"log.level":                   "info",
	"log.file":                    "",
	"log.format":                  "text",
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() *Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("decode built-in defaults: %v", err))
	}
	return &cfg
}

// Load reads the configuration. An explicit path must exist; otherwise
// svccat.yaml is searched for in the working directory and
// $HOME/.config/svccat, and a missing file is not an error. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "svccat"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.WrapConfigError(fmt.Errorf("read config file: %w", err), displayPath(path))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("decode config: %w", err), displayPath(v.ConfigFileUsed()))
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), displayPath(cfg.Source))
	}

	return &cfg, nil
}

func displayPath(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}

// Validate checks that every enumerated value is recognised and numeric
// settings are in range.
func (c *Config) Validate() error {
	if _, err := query.ParseSort(c.Browse.Sort); err != nil {
		return fmt.Errorf("browse.sort: %w", err)
	}
	if _, err := query.ParseFilter(c.Browse.Filter); err != nil {
		return fmt.Errorf("browse.filter: %w", err)
	}
	if _, err := browse.ParseViewMode(c.Browse.View); err != nil {
		return fmt.Errorf("browse.view: %w", err)
	}
	if c.ROI.SavingsRate <= 0 || c.ROI.SavingsRate > 1 {
		return fmt.Errorf("roi.savings_rate must be in (0, 1], got %g", c.ROI.SavingsRate)
	}
	if c.Analytics.EventsPerSecond < 0 {
		return fmt.Errorf("analytics.events_per_second must be >= 0")
	}
	if c.Analytics.Burst < 0 {
		return fmt.Errorf("analytics.burst must be >= 0")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Query returns the initial browse query. Call Validate first.
func (c *Config) Query() query.Query {
	q := query.Default()
	if k, err := query.ParseSort(c.Browse.Sort); err == nil {
		q.Sort = k
	}
	if f, err := query.ParseFilter(c.Browse.Filter); err == nil {
		q.Filter = f
	}
	return q
}

// ViewMode returns the initial view mode.
func (c *Config) ViewMode() browse.ViewMode {
	if m, err := browse.ParseViewMode(c.Browse.View); err == nil {
		return m
	}
	return browse.ViewGrid
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// WriteDefault writes the default configuration to a YAML file.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
