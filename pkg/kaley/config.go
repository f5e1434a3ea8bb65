package kaley

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spicery/kaley-encoding/pkg/corpus"
)

// DefaultCacheSize is the number of encoded words kept by an Encoder.
const DefaultCacheSize = 1024

// ConfigFile represents the structure of a YAML or TOML configuration file.
// Unset fields keep their defaults. Separators are added to the default
// space, never substituted for it.
type ConfigFile struct {
	Separators *string        `yaml:"separators,omitempty" toml:"separators,omitempty"`
	Indicators *IndicatorRule `yaml:"indicators,omitempty" toml:"indicators,omitempty"`
	CacheSize  *int           `yaml:"cache_size,omitempty" toml:"cache_size,omitempty"`
	Corpus     []string       `yaml:"corpus,omitempty" toml:"corpus,omitempty"`
}

// IndicatorRule represents the indicator palette section of a configuration file.
type IndicatorRule struct {
	Counts   []string `yaml:"counts" toml:"counts"` // runs of 2 through 7
	Overflow string   `yaml:"overflow" toml:"overflow"`
}

// Config holds the settings an Encoder is built from.
type Config struct {
	Separators  string
	Palette     Palette
	CacheSize   int
	CorpusFiles []string
}

// DefaultConfig returns the default encoder settings.
func DefaultConfig() *Config {
	return &Config{
		Separators: DefaultSeparators,
		Palette:    DefaultPalette(),
		CacheSize:  DefaultCacheSize,
	}
}

// DefaultConfigFile returns the defaults in configuration file form.
func DefaultConfigFile() *ConfigFile {
	cfg := DefaultConfig()
	separators := cfg.Separators
	cacheSize := cfg.CacheSize
	return &ConfigFile{
		Separators: &separators,
		Indicators: &IndicatorRule{
			Counts:   append([]string(nil), cfg.Palette.Counts[:]...),
			Overflow: cfg.Palette.Overflow,
		},
		CacheSize: &cacheSize,
	}
}

// LoadConfigFile loads and parses a YAML or TOML configuration file. Relative
// corpus paths are resolved against the directory holding the file.
func LoadConfigFile(filename string) (*ConfigFile, error) {
	format, err := corpus.FormatForPath(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filename, err)
	}

	var file ConfigFile
	if err := corpus.Decode(data, format, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s in config file '%s': %w", format, filename, err)
	}

	dir := filepath.Dir(filename)
	for i, path := range file.Corpus {
		if !filepath.IsAbs(path) {
			file.Corpus[i] = filepath.Join(dir, path)
		}
	}

	return &file, nil
}

// ApplyConfigToDefaults overlays the settings present in file onto the
// defaults and validates the result.
func ApplyConfigToDefaults(file *ConfigFile) (*Config, error) {
	cfg := DefaultConfig()
	if file == nil {
		return cfg, nil
	}

	if file.Separators != nil {
		cfg.Separators = MergeSeparators(cfg.Separators, *file.Separators)
	}

	if file.Indicators != nil {
		if len(file.Indicators.Counts) != len(cfg.Palette.Counts) {
			return nil, fmt.Errorf("indicators.counts must list %d glyphs, got %d",
				len(cfg.Palette.Counts), len(file.Indicators.Counts))
		}
		copy(cfg.Palette.Counts[:], file.Indicators.Counts)
		cfg.Palette.Overflow = file.Indicators.Overflow
	}

	if file.CacheSize != nil {
		cfg.CacheSize = *file.CacheSize
	}

	cfg.CorpusFiles = append(cfg.CorpusFiles, file.Corpus...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var errs []error
	if !strings.Contains(c.Separators, DefaultSeparators) {
		errs = append(errs, fmt.Errorf("separators must include %q, got %q", DefaultSeparators, c.Separators))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize))
	}
	if err := c.Palette.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
