package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                     "8080",
		Env:                      "development",
		JWTSecret:                "secure-secret-at-least-32-chars-long",
		JWTTTLHours:              24,
		DBPassword:               "secure-password",
		DBSSLMode:                "require",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           2,
		DBConnMaxLifetimeMinutes: 5,
		DBSchemaMode:             "hybrid",
		TracingSampleRatio:       1,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Port = "" }},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }},
		{"zero token ttl", func(c *Config) { c.JWTTTLHours = 0 }},
		{"zero pool", func(c *Config) { c.DBMaxOpenConns = 0 }},
		{"zero lifetime", func(c *Config) { c.DBConnMaxLifetimeMinutes = 0 }},
		{"unknown schema mode", func(c *Config) { c.DBSchemaMode = "yolo" }},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }},
		{"default secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}},
		{"short secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}},
		{"default db password in production", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadConfig_Normalization(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("DB_SCHEMA_MODE", " SQL ")
	defer viper.Reset()

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sql", c.DBSchemaMode)
	assert.Equal(t, 30, c.SearchCacheTTLSeconds)
	assert.False(t, c.IsProduction())
}
