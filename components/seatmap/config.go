package seatmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configVersionV1 = "1"
	// ConfigVersion exposes the current config format version for tooling.
	ConfigVersion = configVersionV1
)

// Viewport defaults.
const (
	DefaultInitialScale   = 1.0
	DefaultMinScale       = 0.5
	DefaultMaxScale       = 10.0
	DefaultZoomStep       = 1.05
	DefaultPanLimit       = 0.9
	DefaultCacheThreshold = 2.0
	DefaultElongatedRatio = 5.0
	DefaultDebounce       = 200 * time.Millisecond
	DefaultStyleCacheTTL  = 5 * time.Minute
)

// ViewportConfig tunes pan/zoom bounds and the caching heuristic.
type ViewportConfig struct {
	InitialScale   float64       `json:"initial_scale" yaml:"initial_scale"`
	MinScale       float64       `json:"min_scale" yaml:"min_scale"`
	MaxScale       float64       `json:"max_scale" yaml:"max_scale"`
	ZoomStep       float64       `json:"zoom_step" yaml:"zoom_step"`
	PanLimit       float64       `json:"pan_limit" yaml:"pan_limit"`
	CacheThreshold float64       `json:"cache_threshold" yaml:"cache_threshold"`
	ElongatedRatio float64       `json:"elongated_ratio" yaml:"elongated_ratio"`
	Debounce       time.Duration `json:"debounce" yaml:"debounce"`
}

// ConverterConfig tunes the scene converter.
type ConverterConfig struct {
	TicketContainer string  `json:"ticket_container,omitempty" yaml:"ticket_container,omitempty"`
	DefaultFontSize float64 `json:"default_font_size,omitempty" yaml:"default_font_size,omitempty"`
}

// Config is the builder configuration document.
type Config struct {
	Version       string          `json:"version" yaml:"version"`
	Viewport      ViewportConfig  `json:"viewport" yaml:"viewport"`
	Converter     ConverterConfig `json:"converter,omitempty" yaml:"converter,omitempty"`
	StyleCacheTTL time.Duration   `json:"style_cache_ttl,omitempty" yaml:"style_cache_ttl,omitempty"`
	Source        string          `json:"-" yaml:"-"`
}

// DefaultConfig returns a config with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// DefaultViewportConfig returns the stock viewport tuning.
func DefaultViewportConfig() ViewportConfig {
	var cfg ViewportConfig
	cfg.applyDefaults()
	return cfg
}

// ReadConfig loads a config file from disk.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("seatmap: open config %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("seatmap: decode config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// DecodeConfig reads a YAML config from any reader.
func DecodeConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("seatmap: config is empty")
		}
		return nil, fmt.Errorf("seatmap: parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures the config is usable.
func (cfg *Config) Validate() error {
	if cfg.Version != configVersionV1 {
		return fmt.Errorf("seatmap: unsupported config version %q", cfg.Version)
	}
	if cfg.StyleCacheTTL < 0 {
		return errors.New("seatmap: style_cache_ttl must not be negative")
	}
	return cfg.Viewport.Validate()
}

func (cfg *Config) applyDefaults() {
	if cfg.Version == "" {
		cfg.Version = configVersionV1
	}
	if cfg.Converter.TicketContainer == "" {
		cfg.Converter.TicketContainer = DefaultTicketContainer
	}
	if cfg.Converter.DefaultFontSize <= 0 {
		cfg.Converter.DefaultFontSize = DefaultFontSize
	}
	if cfg.StyleCacheTTL == 0 {
		cfg.StyleCacheTTL = DefaultStyleCacheTTL
	}
	cfg.Viewport.applyDefaults()
}

// Validate checks the zoom bounds and heuristic tuning.
func (cfg ViewportConfig) Validate() error {
	var errs []error
	if cfg.MinScale <= 0 {
		errs = append(errs, errors.New("seatmap: viewport min_scale must be positive"))
	}
	if cfg.MaxScale < cfg.MinScale {
		errs = append(errs, fmt.Errorf("seatmap: viewport max_scale %v is below min_scale %v", cfg.MaxScale, cfg.MinScale))
	}
	if cfg.InitialScale < cfg.MinScale || cfg.InitialScale > cfg.MaxScale {
		errs = append(errs, fmt.Errorf("seatmap: viewport initial_scale %v outside [%v, %v]", cfg.InitialScale, cfg.MinScale, cfg.MaxScale))
	}
	if cfg.ZoomStep <= 1 {
		errs = append(errs, errors.New("seatmap: viewport zoom_step must be greater than 1"))
	}
	if cfg.PanLimit <= 0 {
		errs = append(errs, errors.New("seatmap: viewport pan_limit must be positive"))
	}
	if cfg.ElongatedRatio < 1 {
		errs = append(errs, errors.New("seatmap: viewport elongated_ratio must be at least 1"))
	}
	if cfg.Debounce < 0 {
		errs = append(errs, errors.New("seatmap: viewport debounce must not be negative"))
	}
	return errors.Join(errs...)
}

func (cfg *ViewportConfig) applyDefaults() {
	if cfg.MinScale == 0 {
		cfg.MinScale = DefaultMinScale
	}
	if cfg.MaxScale == 0 {
		cfg.MaxScale = DefaultMaxScale
	}
	if cfg.InitialScale == 0 {
		cfg.InitialScale = DefaultInitialScale
	}
	if cfg.ZoomStep == 0 {
		cfg.ZoomStep = DefaultZoomStep
	}
	if cfg.PanLimit == 0 {
		cfg.PanLimit = DefaultPanLimit
	}
	if cfg.CacheThreshold == 0 {
		cfg.CacheThreshold = DefaultCacheThreshold
	}
	if cfg.ElongatedRatio == 0 {
		cfg.ElongatedRatio = DefaultElongatedRatio
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultDebounce
	}
}
