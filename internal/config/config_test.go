package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"Production environment", "production", true},
		{"Development environment", "development", false},
		{"Empty environment", "", false},
		{"Other environment", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.env}
			if got := cfg.IsProduction(); got != tt.want {
				t.Errorf("IsProduction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"Development environment", "development", true},
		{"Production environment", "production", false},
		{"Empty environment", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Auth: AuthConfig{
			JWTSecret:           "development-secret-key",
			AccessTokenDuration: 15 * time.Minute,
		},
		RateLimiter: RateLimiterConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
		Environment: "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectError   bool
		errorContains string
	}{
		{
			name:        "Valid development config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:          "Missing server port",
			mutate:        func(c *Config) { c.Server.Port = "" },
			expectError:   true,
			errorContains: "port",
		},
		{
			name:          "Missing JWT secret",
			mutate:        func(c *Config) { c.Auth.JWTSecret = "" },
			expectError:   true,
			errorContains: "jwt_secret",
		},
		{
			name:          "Non-positive token duration",
			mutate:        func(c *Config) { c.Auth.AccessTokenDuration = 0 },
			expectError:   true,
			errorContains: "access_token_duration",
		},
		{
			name:          "Invalid database type",
			mutate:        func(c *Config) { c.Database.Type = "oracle" },
			expectError:   true,
			errorContains: "database.type",
		},
		{
			name:   "Valid postgres database type",
			mutate: func(c *Config) { c.Database.Type = "postgres" },
		},
		{
			name: "Production requires DSN",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.Auth.JWTSecret = "a-strong-production-secret-at-least-32-chars"
				c.Database.DSN = ""
			},
			expectError:   true,
			errorContains: "dsn",
		},
		{
			name: "Production rejects default JWT secret",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.Auth.JWTSecret = "your-super-secret-key"
				c.Database.DSN = "catalog.db"
			},
			expectError: true,
		},
		{
			name: "Production rejects short JWT secret",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.Auth.JWTSecret = "too-short"
				c.Database.DSN = "catalog.db"
			},
			expectError:   true,
			errorContains: "32",
		},
		{
			name:          "Rate limiter enabled with zero RPS",
			mutate:        func(c *Config) { c.RateLimiter.RPS = 0 },
			expectError:   true,
			errorContains: "rps",
		},
		{
			name:          "Rate limiter enabled with zero burst",
			mutate:        func(c *Config) { c.RateLimiter.Burst = 0 },
			expectError:   true,
			errorContains: "burst",
		},
		{
			name: "Rate limiter disabled skips validation",
			mutate: func(c *Config) {
				c.RateLimiter.Enabled = false
				c.RateLimiter.RPS = 0
				c.RateLimiter.Burst = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Validate() error = %v, want substring %q", err, tt.errorContains)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.Database.Type)
	}
	if cfg.Import.Timeout != 10*time.Minute {
		t.Errorf("expected default import timeout 10m, got %s", cfg.Import.Timeout)
	}
	if !cfg.RateLimiter.Enabled {
		t.Error("expected rate limiter enabled by default")
	}
}
