package config

import (
	"testing"
	"time"
)

func TestNewServerConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE", "memory")

	cfg, err := NewServerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port: got %d, want 8080", cfg.Port)
	}
	if cfg.Environment != "dev" {
		t.Errorf("Environment: got %q, want dev", cfg.Environment)
	}
	if cfg.ServerShutdownTimeout != 10*time.Second {
		t.Errorf("ServerShutdownTimeout: got %v, want 10s", cfg.ServerShutdownTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled: got false, want true")
	}
	if len(cfg.SeedLocales) != 3|| cfg.SeedLocales[0] != "en_US" {
		t.Errorf("SeedLocales: got %v", cfg.SeedLocales)
	}
	if len(cfg.SeedAttributes) != 3 || cfg.SeedAttributes[2] != "a_file" {
		t.Errorf("SeedAttributes: got %v", cfg.SeedAttributes)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() ServerEnvironment {
		return ServerEnvironment{
			Environment:            "test",
			Port:                   8080,
			MaxRequestSize:         1024,
			Storage:                "postgres",
			DatabaseURL:            "postgres://localhost:5432/pim",
			DBMaxConnections:       4,
			AuthJWKCacheMinRefresh: time.Minute,
			AuthJWKCacheMaxRefresh: time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *ServerEnvironment)
		wantErr bool
	}{
		{"valid", func(cfg *ServerEnvironment) {}, false},
		{"port too large", func(cfg *ServerEnvironment) { cfg.Port = 70000 }, true},
		{"unknown environment", func(cfg *ServerEnvironment) { cfg.Environment = "qa" }, true},
		{"unknown storage", func(cfg *ServerEnvironment) { cfg.Storage = "mysql" }, true},
		{"postgres without url", func(cfg *ServerEnvironment) { cfg.DatabaseURL = "" }, true},
		{"memory without url", func(cfg *ServerEnvironment) { cfg.Storage = "memory"; cfg.DatabaseURL = "" }, false},
		{"min connections above max", func(cfg *ServerEnvironment) { cfg.DBMinConnections = 5 }, true},
		{"relative public base url", func(cfg *ServerEnvironment) { cfg.PublicBaseURL = "/pim" }, true},
		{"absolute public base url", func(cfg *ServerEnvironment) { cfg.PublicBaseURL = "https://pim.example.com" }, false},
		{"jwks refresh bounds inverted", func(cfg *ServerEnvironment) {
			cfg.AuthJWKSURL = "https://auth.example.com/jwks.json"
			cfg.AuthJWKCacheMinRefresh = 2 * time.Hour
		}, true},
		{"both jwks url and file", func(cfg *ServerEnvironment) {
			cfg.AuthJWKSURL = "https://auth.example.com/jwks.json"
			cfg.AuthJWKSFile = "keys/pimctl.public.jwk"
		}, true},
		{"jwks file only", func(cfg *ServerEnvironment) { cfg.AuthJWKSFile = "keys/pimctl.public.jwk" }, false},
		{"zero request size", func(cfg *ServerEnvironment) { cfg.MaxRequestSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
