// Package config assembles runtime configuration from defaults, an optional
// .env file, and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultAPITimeout   = 10 * time.Second
	defaultSessionTTL   = 7 * 24 * time.Hour
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Content ContentConfig
	Dev     bool
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// APIConfig points at the storefront API this front-end consumes.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	SigningKey string
	Secure     bool
	TTL        time.Duration
}

// ContentConfig locates static content sources.
type ContentConfig struct {
	// PagesFile is an optional YAML file of content pages; built-in
	// fallbacks are used when empty or missing.
	PagesFile string
	// TemplatesDir holds the html/template pages.
	TemplatesDir string
	// PublicDir holds static assets served under /assets/.
	PublicDir string
}

// ValidationError is returned when required configuration is missing.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap injects an explicit key/value map taking precedence over the
// system environment. Useful in tests.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv disables os.Getenv lookups, relying only on the provided
// map and .env file.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load builds the configuration. STOREFRONT_API_BASE_URL is the only
// mandatory setting; everything else has a workable default.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{envFile: defaultEnvFile, useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnv != nil {
			if value, ok := dotEnv[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "STOREFRONT_SERVER_PORT", portDefault(lookup)),
			ReadTimeout:  durationWithDefault(lookup, "STOREFRONT_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "STOREFRONT_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "STOREFRONT_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		API: APIConfig{
			BaseURL: stringWithDefault(lookup, "STOREFRONT_API_BASE_URL", ""),
			Timeout: durationWithDefault(lookup, "STOREFRONT_API_TIMEOUT", defaultAPITimeout),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, "STOREFRONT_SESSION_SIGNING_KEY", ""),
			Secure:     boolWithDefault(lookup, "STOREFRONT_SESSION_SECURE", false),
			TTL:        durationWithDefault(lookup, "STOREFRONT_SESSION_TTL", defaultSessionTTL),
		},
		Content: ContentConfig{
			PagesFile:    stringWithDefault(lookup, "STOREFRONT_CONTENT_PAGES_FILE", ""),
			TemplatesDir: stringWithDefault(lookup, "STOREFRONT_TEMPLATES_DIR", "templates"),
			PublicDir:    stringWithDefault(lookup, "STOREFRONT_PUBLIC_DIR", "public"),
		},
		Dev: boolWithDefault(lookup, "STOREFRONT_DEV", false),
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// portDefault prefers Cloud Run's PORT before falling back to 8080, matching
// the deployment environments the front-end runs in.
func portDefault(lookup func(string) (string, bool)) string {
	if value, ok := lookup("PORT"); ok && value != "" {
		return value
	}
	return defaultPort
}

func validateConfig(cfg Config) error {
	var missing []string
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		missing = append(missing, "API.BaseURL")
	}
	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Session.TTL <= 0 {
		missing = append(missing, "Session.TTL")
	}
	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
