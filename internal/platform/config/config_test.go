package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{
			"STOREFRONT_API_BASE_URL": "http://localhost:8000",
		}),
	)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080 got %q", cfg.Server.Port)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("expected default API timeout got %v", cfg.API.Timeout)
	}
	if cfg.Session.TTL != 7*24*time.Hour {
		t.Fatalf("expected default session TTL got %v", cfg.Session.TTL)
	}
	if cfg.Content.TemplatesDir != "templates" || cfg.Content.PublicDir != "public" {
		t.Fatalf("unexpected content defaults: %+v", cfg.Content)
	}
	if cfg.Dev {
		t.Fatalf("dev mode must default off")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{
			"STOREFRONT_API_BASE_URL":        "https://api.example.com",
			"STOREFRONT_SERVER_PORT":         "9000",
			"STOREFRONT_SERVER_READ_TIMEOUT": "5s",
			"STOREFRONT_SESSION_SECURE":      "true",
			"STOREFRONT_SESSION_TTL":         "24h",
			"STOREFRONT_DEV":                 "1",
		}),
	)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.Server.Port != "9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if !cfg.Session.Secure || cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if !cfg.Dev {
		t.Fatalf("expected dev mode on")
	}
}

func TestLoadCloudRunPortFallback(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{
			"STOREFRONT_API_BASE_URL": "http://localhost:8000",
			"PORT":                    "8181",
		}),
	)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != "8181" {
		t.Fatalf("expected PORT fallback got %q", cfg.Server.Port)
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{}))
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError got %v", err)
	}
	fields := validation.Fields()
	if len(fields) == 0 || fields[0] != "API.BaseURL" {
		t.Fatalf("expected API.BaseURL reported missing, got %v", fields)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{
			"STOREFRONT_API_BASE_URL": "http://localhost:8000",
			"STOREFRONT_API_TIMEOUT":  "not-a-duration",
		}),
	)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("invalid duration must fall back to default, got %v", cfg.API.Timeout)
	}
}
