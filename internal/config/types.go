// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto picks a style from the terminal.
	ColorSchemeAuto  ColorScheme = "auto"
	ColorSchemeDark  ColorScheme = "dark"
	ColorSchemeLight ColorScheme = "light"
	// ColorSchemeNoTTY renders plain text.
	ColorSchemeNoTTY ColorScheme = "notty"
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is the sentinel error wrapped by InvalidColorSchemeError.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrConfigNotFound is returned when an explicitly requested file is missing.
	ErrConfigNotFound = errors.New("config file not found")

	logLevels    = []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
	colorSchemes = []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight, ColorSchemeNoTTY}
)

type (
	// LogLevel is the minimum level of log messages that are written.
	LogLevel string

	// ColorScheme selects the style for rendered Markdown guidance.
	ColorScheme string

	// InvalidLogLevelError is returned for an unknown log level.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidColorSchemeError is returned for an unknown color scheme.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Config is the loaded configuration.
	Config struct {
		LogLevel LogLevel `mapstructure:"log_level" toml:"log_level"`
		UI       UIConfig `mapstructure:"ui" toml:"ui"`
		// Defaults overrides parameter defaults, keyed "path.param".
		Defaults map[string]any `mapstructure:"-" toml:"defaults,omitempty"`
	}

	// UIConfig holds output settings.
	UIConfig struct {
		Verbose     bool        `mapstructure:"verbose" toml:"verbose"`
		ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme"`
	}
)

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: LogLevelWarn,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: %v)", e.Value, logLevels)
}

func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: %v)", e.Value, colorSchemes)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate reports whether l is a known level.
func (l LogLevel) Validate() error {
	if slices.Contains(logLevels, l) {
		return nil
	}
	return &InvalidLogLevelError{Value: l}
}

func (l LogLevel) String() string { return string(l) }

// Validate reports whether c is a known scheme.
func (c ColorScheme) Validate() error {
	if slices.Contains(colorSchemes, c) {
		return nil
	}
	return &InvalidColorSchemeError{Value: c}
}

func (c ColorScheme) String() string { return string(c) }

// Validate checks the fields environment overrides can set, which the
// schema never sees.
func (c *Config) Validate() error {
	return errors.Join(c.LogLevel.Validate(), c.UI.ColorScheme.Validate())
}
