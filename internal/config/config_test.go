package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host
// environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Primary.Env)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, time.Hour, cfg.RateLimit.ContactWindow)
	assert.Equal(t, 5, cfg.RateLimit.ContactMax)
	assert.Equal(t, "logs", cfg.Observability.Logging.Dir)
	assert.Equal(t, "debug", cfg.Observability.GetLogLevel())
	assert.Equal(t, "console", cfg.Observability.GetLogFormat())
	assert.False(t, cfg.Observability.NewRelicEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("CORS_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_DIR", "/var/log/toe")
	t.Setenv("CONTACT_RATE_LIMIT_MAX", "2")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.Equal(t, "json", cfg.Observability.GetLogFormat())
	assert.Equal(t, "/var/log/toe", cfg.Observability.Logging.Dir)
	assert.Equal(t, 2, cfg.RateLimit.ContactMax)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, EnvProduction, cfg.Observability.Environment)
}

func TestLoadConfig_LenientValues(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		level    string
		wantPort string
		wantLvl  string
	}{
		{name: "non numeric port", port: "abc", level: "info", wantPort: "3000", wantLvl: "info"},
		{name: "out of range port", port: "70000", level: "debug", wantPort: "3000", wantLvl: "debug"},
		{name: "zero port", port: "0", level: "error", wantPort: "3000", wantLvl: "error"},
		{name: "unknown level", port: "4000", level: "verbose", wantPort: "4000", wantLvl: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tt.port)
			t.Setenv("LOG_LEVEL", tt.level)

			cfg, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantLvl, cfg.Observability.GetLogLevel())
		})
	}
}

func TestLoadConfig_RejectsUnknownEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "staging")

	_, err := LoadConfig()
	assert.Error(t, err)
}
