// Package config handles loading and validating the searchselect configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// maxPageSize mirrors the server-side cap on the limit query parameter.
const maxPageSize = 50

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig                        `yaml:"server"`
	Widget  WidgetConfig                        `yaml:"widget"`
	Types   map[domain.SearchType]WidgetConfig `yaml:"types"`
	Logging LoggingConfig                       `yaml:"logging"`
}

// ServerConfig defines how the search API is reached.
type ServerConfig struct {
	URL       string          `yaml:"url"`
	Timeout   time.Duration   `yaml:"timeout"`
	UserAgent string          `yaml:"user_agent"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines client-side request throttling. A zero PerSecond
// disables the limiter.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// WidgetConfig holds widget options. Pointer fields distinguish "unset" from
// an explicit false or zero so per-type overrides can be layered.
type WidgetConfig struct {
	Multiple    *bool         `yaml:"multiple"`
	MinLength   *int          `yaml:"min_length"`
	Debounce    time.Duration `yaml:"debounce"`
	CacheTime   time.Duration `yaml:"cache_time"`
	CacheSize   int           `yaml:"cache_size"`
	MaxResults  int           `yaml:"max_results"`
	AllowClear  *bool         `yaml:"allow_clear"`
	ShowFilters *bool         `yaml:"show_filters"`
	BlurGrace   time.Duration `yaml:"blur_grace"`
	Placeholder string        `yaml:"placeholder"`
}

// WidgetSettings is a fully resolved WidgetConfig for one search type.
type WidgetSettings struct {
	Multiple    bool
	MinLength   int
	Debounce    time.Duration
	CacheTime   time.Duration
	CacheSize   int
	MaxResults  int
	AllowClear  bool
	ShowFilters bool
	BlurGrace   time.Duration
	Placeholder string
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
	File   string `yaml:"file"`   // used by the interactive picker
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
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

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// WidgetFor resolves the widget settings for t: built-in defaults, then the
// global widget block, then the per-type override.
func (c *Config) WidgetFor(t domain.SearchType) WidgetSettings {
	s := WidgetSettings{
		Multiple:    true,
		MinLength:   2,
		Debounce:    300 * time.Millisecond,
		CacheTime:   5 * time.Minute,
		CacheSize:   256,
		MaxResults:  20,
		AllowClear:  true,
		ShowFilters: true,
		BlurGrace:   150 * time.Millisecond,
		Placeholder: "Type to search...",
	}
	overlay(&s, c.Widget)
	if o, ok := c.Types[t]; ok {
		overlay(&s, o)
	}
	return s
}

func overlay(s *WidgetSettings, w WidgetConfig) {
	if w.Multiple != nil {
		s.Multiple = *w.Multiple
	}
	if w.MinLength != nil {
		s.MinLength = *w.MinLength
	}
	if w.Debounce != 0 {
		s.Debounce = w.Debounce
	}
	if w.CacheTime != 0 {
		s.CacheTime = w.CacheTime
	}
	if w.CacheSize != 0 {
		s.CacheSize = w.CacheSize
	}
	if w.MaxResults != 0 {
		s.MaxResults = w.MaxResults
	}
	if w.AllowClear != nil {
		s.AllowClear = *w.AllowClear
	}
	if w.ShowFilters != nil {
		s.ShowFilters = *w.ShowFilters
	}
	if w.BlurGrace != 0 {
		s.BlurGrace = w.BlurGrace
	}
	if w.Placeholder != "" {
		s.Placeholder = w.Placeholder
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.URL == "" {
		s.URL = "http://localhost:5000"
	}
	if s.Timeout == 0 {
		s.Timeout = 10 * time.Second
	}
	if s.UserAgent == "" {
		s.UserAgent = "searchselect"
	}
	if s.RateLimit.PerSecond > 0 && s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = 1
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
	if l.File == "" {
		l.File = "searchselect.log"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if u, err := url.Parse(cfg.Server.URL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("server.url must be an absolute http(s) URL (got %q)", cfg.Server.URL))
	}
	if cfg.Server.Timeout < 0 {
		errs = append(errs, fmt.Errorf("server.timeout must not be negative"))
	}
	if cfg.Server.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit.per_second must not be negative"))
	}

	errs = append(errs, validateWidget("widget", cfg.Widget)...)
	for t, w := range cfg.Types {
		errs = append(errs, validateWidget(fmt.Sprintf("types.%s", t), w)...)
	}

	switch cfg.Logging.Format {
	case "text", "json", "pretty":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

func validateWidget(prefix string, w WidgetConfig) []error {
	var errs []error
	if w.MinLength != nil && *w.MinLength < 0 {
		errs = append(errs, fmt.Errorf("%s.min_length must not be negative", prefix))
	}
	if w.Debounce < 0 {
		errs = append(errs, fmt.Errorf("%s.debounce must not be negative", prefix))
	}
	if w.CacheTime < 0 {
		errs = append(errs, fmt.Errorf("%s.cache_time must not be negative", prefix))
	}
	if w.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%s.cache_size must not be negative", prefix))
	}
	if w.MaxResults < 0 || w.MaxResults > maxPageSize {
		errs = append(errs, fmt.Errorf("%s.max_results must be between 1 and %d", prefix, maxPageSize))
	}
	return errs
}
