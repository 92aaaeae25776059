// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LogLevelDebug logs resolution and binding details.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs progress.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs recoverable problems only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"

	// DefaultExtension is the default dependency unit extension.
	DefaultExtension = ".so"
	// DefaultLoaderSuffix names the loader component of a plugin pair.
	DefaultLoaderSuffix = "Loader"
	// DefaultBatchSize is the default number of sample rows per insert.
	DefaultBatchSize = 500
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidResolverConfig is the sentinel error wrapped by InvalidResolverConfigError.
	ErrInvalidResolverConfig = errors.New("invalid resolver config")
	// ErrInvalidPluginsConfig is the sentinel error wrapped by InvalidPluginsConfigError.
	ErrInvalidPluginsConfig = errors.New("invalid plugins config")
	// ErrInvalidTimeoutsConfig is the sentinel error wrapped by InvalidTimeoutsConfigError.
	ErrInvalidTimeoutsConfig = errors.New("invalid timeouts config")
	// ErrInvalidSamplesConfig is the sentinel error wrapped by InvalidSamplesConfigError.
	ErrInvalidSamplesConfig = errors.New("invalid samples config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidResolverConfigError collects ResolverConfig field errors.
	InvalidResolverConfigError struct {
		FieldErrors []error
	}

	// InvalidPluginsConfigError collects PluginsConfig field errors.
	InvalidPluginsConfigError struct {
		FieldErrors []error
	}

	// InvalidTimeoutsConfigError collects TimeoutsConfig field errors.
	InvalidTimeoutsConfigError struct {
		FieldErrors []error
	}

	// InvalidSamplesConfigError collects SamplesConfig field errors.
	InvalidSamplesConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Resolver ResolverConfig `json:"resolver" mapstructure:"resolver"`
		Plugins  PluginsConfig  `json:"plugins" mapstructure:"plugins"`
		Log      LogConfig      `json:"log" mapstructure:"log"`
		Timeouts TimeoutsConfig `json:"timeouts" mapstructure:"timeouts"`
		Samples  SamplesConfig  `json:"samples" mapstructure:"samples"`
	}

	// ResolverConfig configures dependency resolution.
	ResolverConfig struct {
		// SearchRoot is the directory tree searched for units; empty means the
		// working directory.
		SearchRoot string `json:"search_root" mapstructure:"search_root"`
		// Extension is the unit file extension, including the dot.
		Extension string `json:"extension" mapstructure:"extension"`
		// Strict turns multiple matches into an error.
		Strict bool `json:"strict" mapstructure:"strict"`
	}

	// PluginsConfig configures plugin pair binding.
	PluginsConfig struct {
		// Dir is where component units are loaded from; empty means the
		// working directory.
		Dir string `json:"dir" mapstructure:"dir"`
		// LoaderSuffix turns an identifier into the loader component name.
		LoaderSuffix string `json:"loader_suffix" mapstructure:"loader_suffix"`
	}

	// LogConfig configures diagnostics.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// TimeoutsConfig bounds blocking work. Zero means unbounded.
	TimeoutsConfig struct {
		Resolve   time.Duration `json:"resolve" mapstructure:"resolve"`
		Operation time.Duration `json:"operation" mapstructure:"operation"`
	}

	// SamplesConfig tunes sample loading.
	SamplesConfig struct {
		BatchSize int     `json:"batch_size" mapstructure:"batch_size"`
		RateLimit float64 `json:"rate_limit" mapstructure:"rate_limit"`
	}
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid returns whether the ResolverConfig has valid fields.
func (c ResolverConfig) IsValid() (bool, []error) {
	var errs []error
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		errs = append(errs, fmt.Errorf("extension %q must start with a dot", c.Extension))
	}
	if c.SearchRoot != "" && strings.TrimSpace(c.SearchRoot) == "" {
		errs = append(errs, errors.New("search_root must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidResolverConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidResolverConfigError.
func (e *InvalidResolverConfigError) Error() string {
	return "invalid resolver config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidResolverConfig for errors.Is() compatibility.
func (e *InvalidResolverConfigError) Unwrap() error { return ErrInvalidResolverConfig }

// IsValid returns whether the PluginsConfig has valid fields.
func (c PluginsConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.LoaderSuffix) == "" {
		errs = append(errs, errors.New("loader_suffix must not be empty"))
	}
	if c.Dir != "" && strings.TrimSpace(c.Dir) == "" {
		errs = append(errs, errors.New("dir must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPluginsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPluginsConfigError.
func (e *InvalidPluginsConfigError) Error() string {
	return "invalid plugins config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidPluginsConfig for errors.Is() compatibility.
func (e *InvalidPluginsConfigError) Unwrap() error { return ErrInvalidPluginsConfig }

// IsValid returns whether the TimeoutsConfig has valid fields.
func (c TimeoutsConfig) IsValid() (bool, []error) {
	var errs []error
	if c.Resolve < 0 {
		errs = append(errs, fmt.Errorf("resolve timeout %s must not be negative", c.Resolve))
	}
	if c.Operation < 0 {
		errs = append(errs, fmt.Errorf("operation timeout %s must not be negative", c.Operation))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidTimeoutsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTimeoutsConfigError.
func (e *InvalidTimeoutsConfigError) Error() string {
	return "invalid timeouts config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidTimeoutsConfig for errors.Is() compatibility.
func (e *InvalidTimeoutsConfigError) Unwrap() error { return ErrInvalidTimeoutsConfig }

// IsValid returns whether the SamplesConfig has valid fields.
func (c SamplesConfig) IsValid() (bool, []error) {
	var errs []error
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch_size %d must be positive", c.BatchSize))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit %g must not be negative", c.RateLimit))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSamplesConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSamplesConfigError.
func (e *InvalidSamplesConfigError) Error() string {
	return "invalid samples config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidSamplesConfig for errors.Is() compatibility.
func (e *InvalidSamplesConfigError) Unwrap() error { return ErrInvalidSamplesConfig }

// IsValid returns whether the Config has valid fields, delegating to every
// section.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.Resolver.IsValid,
		c.Plugins.IsValid,
		c.Log.Level.IsValid,
		c.Timeouts.IsValid,
		c.Samples.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return "invalid config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			Extension: DefaultExtension,
		},
		Plugins: PluginsConfig{
			LoaderSuffix: DefaultLoaderSuffix,
		},
		Log: LogConfig{
			Level: LogLevelWarn,
		},
		Samples: SamplesConfig{
			BatchSize: DefaultBatchSize,
		},
	}
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}
