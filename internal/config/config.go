// Package config manages environment variables.
//
// It reads variables from the process environment (and from a `.env`
// file when one exists), loads them into structured Go types, applies
// the fixed defaults of the service and validates the result so the
// rest of the application can rely on a complete configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map the flat, unprefixed env vars (NODE_ENV, PORT, HOST, ...) into nested config keys.
//   - Fill in defaults for anything that was not provided or could not be parsed.
//   - Validate the final config so the app fails fast on bad values.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment before
	// any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DefaultPort = "3000"
	DefaultHost = "0.0.0.0"
)

/*
	The service reads the same variable names the site has always been
	deployed with (NODE_ENV, PORT, HOST, CORS_ORIGIN, LOG_LEVEL, LOG_DIR, ...).
	They carry no common prefix, so instead of a prefix filter the env
	provider gets a lookup table translating each known variable into a
	koanf key path. Unknown variables map to "" and are skipped.

	e.g. LOG_LEVEL -> observability.logging.level -> Config.Observability.Logging.Level
*/
var envKeys = map[string]string{
	"NODE_ENV": "primary.env",

	"HOST":          "server.host",
	"PORT":          "server.port",
	"CORS_ORIGIN":   "server.cors_allowed_origins",
	"READ_TIMEOUT":  "server.read_timeout",
	"WRITE_TIMEOUT": "server.write_timeout",
	"IDLE_TIMEOUT":  "server.idle_timeout",

	"RATE_LIMIT_WINDOW":         "rate_limit.window",
	"RATE_LIMIT_MAX":            "rate_limit.max",
	"CONTACT_RATE_LIMIT_WINDOW": "rate_limit.contact_window",
	"CONTACT_RATE_LIMIT_MAX":    "rate_limit.contact_max",

	"LOG_LEVEL":  "observability.logging.level",
	"LOG_FORMAT": "observability.logging.format",
	"LOG_DIR":    "observability.logging.dir",

	"NEW_RELIC_LICENSE_KEY":                 "observability.new_relic.license_key",
	"NEW_RELIC_APP_LOG_FORWARDING_ENABLED":  "observability.new_relic.app_log_forwarding_enabled",
	"NEW_RELIC_DISTRIBUTED_TRACING_ENABLED": "observability.new_relic.distributed_tracing_enabled",
	"NEW_RELIC_DEBUG_LOGGING":               "observability.new_relic.debug_logging",
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator once
// defaults have been applied.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Port stays a string: a non-numeric PORT is not a startup error, it
// silently falls back to DefaultPort.
type ServerConfig struct {
	Host               string   `koanf:"host"`
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// RateLimitConfig holds the two per-IP request windows.
//
// Window/Max apply to every /api route; ContactWindow/ContactMax apply
// additionally to contact form submissions.
type RateLimitConfig struct {
	Window        time.Duration `koanf:"window" validate:"required,min=1s"`
	Max           int           `koanf:"max" validate:"required,min=1"`
	ContactWindow time.Duration `koanf:"contact_window" validate:"required,min=1s"`
	ContactMax    int           `koanf:"contact_max" validate:"required,min=1"`
}

// Addr returns the host:port pair the HTTP server binds to.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// IsDevelopment reports whether stack traces and colored console logs are enabled.
func (c *Config) IsDevelopment() bool {
	return c.Primary.Env == EnvDevelopment
}

// IsProduction reports whether the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == EnvProduction
}

// Defaults returns the configuration used when no env var is set.
func Defaults() *Config {
	return defaultConfig()
}

// defaultConfig returns the configuration used when no env var is set.
// Values loaded from the environment are decoded on top of it.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: EnvDevelopment},
		Server: ServerConfig{
			Host:               DefaultHost,
			Port:               DefaultPort,
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Window:        15 * time.Minute,
			Max:           100,
			ContactWindow: time.Hour,
			ContactMax:    5,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, decodes it on
// top of the defaults, normalizes lenient values and validates the result.
//
// Behavior summary:
//   - Reads only the variables listed in envKeys
//   - Unset/blank values keep their defaults
//   - A PORT that is not a valid TCP port falls back to 3000
//   - An unknown LOG_LEVEL falls back to info
//   - Observability service name + environment are forced from primary config
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Blank values are dropped here so they keep their defaults instead of
	// decoding into zero values ("" -> 0, "" -> invalid duration).
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := defaultConfig()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	normalize(mainConfig)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.Observability.ServiceName = "touch-of-elegance"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// normalize restores defaults for values that were present but blank or
// unusable. None of these are worth refusing to start over.
func normalize(c *Config) {
	c.Primary.Env = strings.ToLower(strings.TrimSpace(c.Primary.Env))
	if c.Primary.Env == "" {
		c.Primary.Env = EnvDevelopment
	}

	c.Server.Port = normalizePort(c.Server.Port)

	if strings.TrimSpace(c.Server.Host) == "" {
		c.Server.Host = DefaultHost
	}

	origins := make([]string, 0, len(c.Server.CORSAllowedOrigins))
	for _, entry := range c.Server.CORSAllowedOrigins {
		// CORS_ORIGIN may arrive as one comma separated value.
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.Server.CORSAllowedOrigins = origins

	logging := &c.Observability.Logging
	logging.Level = strings.ToLower(strings.TrimSpace(logging.Level))
	if logging.Level != "" && !validLogLevels[logging.Level] {
		logging.Level = "info"
	}
	if strings.TrimSpace(logging.Dir) == "" {
		logging.Dir = "logs"
	}
}

// normalizePort returns raw when it is a usable TCP port and DefaultPort otherwise.
func normalizePort(raw string) string {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return DefaultPort
	}
	return strconv.Itoa(port)
}
