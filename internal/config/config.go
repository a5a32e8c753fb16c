// Package config loads the TOML configuration of the nwbinspect tool.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Config is the effective configuration of the inspector.
type Config struct {
	LogLevel zerolog.Level
	Format   string
	// MaxMajorVersion is the newest NWB major version the check accepts.
	MaxMajorVersion int
	// TimestampDigits is the fractional second precision timestamps are shown with.
	TimestampDigits int
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:        zerolog.WarnLevel,
		Format:          FormatText,
		MaxMajorVersion: 1,
		TimestampDigits: 3,
	}
}

type fileConfig struct {
	LogLevel        string `toml:"log_level"`
	Format          string `toml:"format"`
	MaxMajorVersion int    `toml:"max_major_version"`
	TimestampDigits int    `toml:"timestamp_digits"`
}

// Load reads path and overlays the keys it defines on Default.
//
// Example file:
//
//	log_level = "debug"
//	format = "json"
//	max_major_version = 1
//	timestamp_digits = 6
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		level, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = level
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}

	if meta.IsDefined("max_major_version") {
		cfg.MaxMajorVersion = raw.MaxMajorVersion
	}

	if meta.IsDefined("timestamp_digits") {
		cfg.TimestampDigits = raw.TimestampDigits
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, Formats)
	}
	if c.MaxMajorVersion < 1 {
		return fmt.Errorf("invalid max_major_version %d: must be at least 1", c.MaxMajorVersion)
	}
	if c.TimestampDigits < 0 || c.TimestampDigits > 9 {
		return fmt.Errorf("invalid timestamp_digits %d: must be within 0..9", c.TimestampDigits)
	}
	return nil
}
