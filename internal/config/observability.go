package config

import (
	"fmt"
)

// ObservabilityConfig groups all configuration related to telemetry and runtime visibility:
//   - logging settings (level, format, log directory)
//   - APM/tracing provider settings (New Relic)
//
// It is always present on Config; DefaultObservabilityConfig seeds it
// before the environment is decoded on top.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM dashboards.
	// It is forced by LoadConfig, not configurable.
	ServiceName string `koanf:"service_name"`

	// Environment mirrors Primary.Env so telemetry can be split by environment.
	Environment string `koanf:"environment"`

	// Logging config controls structured logger behavior.
	Logging LoggingConfig `koanf:"logging" validate:"required"`

	// NewRelic config controls APM and tracing features.
	NewRelic NewRelicConfig `koanf:"new_relic"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	// Empty means "pick by environment", see GetLogLevel.
	Level string `koanf:"level"`

	// Format selects the output format ("json" or "console").
	// Empty means console in development and json everywhere else.
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Dir is where production per-level log files (error.log, info.log, ...) are appended.
	Dir string `koanf:"dir" validate:"required"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey disables New Relic entirely; the rest are feature toggles.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultObservabilityConfig provides the defaults the environment is decoded onto.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: "touch-of-elegance",
		Environment: EnvDevelopment,

		Logging: LoggingConfig{
			Level:  "",
			Format: "",
			Dir:    "logs",
		},

		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // Disabled by default to avoid mixed log formats
		},
	}
}

// Validate applies rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	if c.Logging.Level != "" && !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// An explicitly configured level always wins. Otherwise production
// (and test) default to "info" and development defaults to "debug".
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if c.Environment == EnvDevelopment {
		return "debug"
	}
	return "info"
}

// GetLogFormat returns the effective output format.
func (c *ObservabilityConfig) GetLogFormat() string {
	if c.Logging.Format != "" {
		return c.Logging.Format
	}
	if c.Environment == EnvDevelopment {
		return "console"
	}
	return "json"
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// NewRelicEnabled reports whether a license key was configured.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}
