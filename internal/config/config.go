package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile           = ".env"
	defaultPort              = "8080"
	defaultEnvironment       = "local"
	defaultReadHeaderTimeout = 10 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultRequestTimeout    = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultSiteName          = "TouchSync"
	defaultTemplatesDir      = "templates"
	defaultPublicDir         = "public"
	defaultLocalesDir        = "locales"
	defaultContentDir        = "content"
	defaultFallbackLang      = "en"
	defaultContentCacheTTL   = 5 * time.Minute
	defaultSubmitDelay       = 1500 * time.Millisecond
	defaultInquiryTTL        = 30 * time.Minute
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Paths     PathsConfig
	Session   SessionConfig
	I18n      I18nConfig
	CMS       CMSConfig
	Contact   ContactConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Name        string
	BaseURL     string
	Environment string
	DevMode     bool
}

// IsProduction reports whether the site runs with production hardening (secure cookies).
func (s SiteConfig) IsProduction() bool {
	return s.Environment == "prod"
}

// PathsConfig lists on-disk locations for templates, assets and data.
type PathsConfig struct {
	Templates   string
	Public      string
	Locales     string
	Content     string
	CatalogFile string // optional; the embedded dataset is used when empty
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	SigningKey string
}

// I18nConfig lists supported languages.
type I18nConfig struct {
	Fallback  string
	Supported []string
}

// CMSConfig points at an optional remote content service.
type CMSConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

// ContactConfig tunes the simulated inquiry submission.
type ContactConfig struct {
	SubmitDelay time.Duration
	IdleTTL     time.Duration
}

// AnalyticsConfig holds client instrumentation identifiers.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
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
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
// Precedence: explicit env map > process environment > .env file > defaults.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
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
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Port resolution: prefer TOUCHSYNC_WEB_PORT, then the platform's PORT.
	port := stringWithDefault(lookup, "TOUCHSYNC_WEB_PORT", "")
	if port == "" {
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	env := strings.ToLower(stringWithDefault(lookup, "TOUCHSYNC_WEB_ENV", defaultEnvironment))

	cfg := Config{
		Server: ServerConfig{
			Port:              port,
			ReadHeaderTimeout: durationWithDefault(lookup, "TOUCHSYNC_WEB_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
			ReadTimeout:       durationWithDefault(lookup, "TOUCHSYNC_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      durationWithDefault(lookup, "TOUCHSYNC_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "TOUCHSYNC_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:    durationWithDefault(lookup, "TOUCHSYNC_WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
			ShutdownTimeout:   durationWithDefault(lookup, "TOUCHSYNC_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			Name:        stringWithDefault(lookup, "TOUCHSYNC_WEB_SITE_NAME", defaultSiteName),
			BaseURL:     strings.TrimRight(stringWithDefault(lookup, "TOUCHSYNC_WEB_BASE_URL", ""), "/"),
			Environment: env,
			// DEV is accepted as a shorthand during local development.
			DevMode: boolWithDefault(lookup, "TOUCHSYNC_WEB_DEV", boolWithDefault(lookup, "DEV", false)),
		},
		Paths: PathsConfig{
			Templates:   stringWithDefault(lookup, "TOUCHSYNC_WEB_TEMPLATES_DIR", defaultTemplatesDir),
			Public:      stringWithDefault(lookup, "TOUCHSYNC_WEB_PUBLIC_DIR", defaultPublicDir),
			Locales:     stringWithDefault(lookup, "TOUCHSYNC_WEB_LOCALES_DIR", defaultLocalesDir),
			Content:     stringWithDefault(lookup, "TOUCHSYNC_WEB_CONTENT_DIR", defaultContentDir),
			CatalogFile: stringWithDefault(lookup, "TOUCHSYNC_WEB_CATALOG_FILE", ""),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, "TOUCHSYNC_WEB_SESSION_SIGNING_KEY", ""),
		},
		I18n: I18nConfig{
			Fallback:  strings.ToLower(stringWithDefault(lookup, "TOUCHSYNC_WEB_FALLBACK_LANG", defaultFallbackLang)),
			Supported: csvWithDefault(lookup, "TOUCHSYNC_WEB_LANGS", []string{"en", "zh"}),
		},
		CMS: CMSConfig{
			BaseURL:  stringWithDefault(lookup, "TOUCHSYNC_WEB_CMS_BASE_URL", ""),
			CacheTTL: durationWithDefault(lookup, "TOUCHSYNC_WEB_CMS_CACHE_TTL", defaultContentCacheTTL),
		},
		Contact: ContactConfig{
			SubmitDelay: durationWithDefault(lookup, "TOUCHSYNC_WEB_CONTACT_SUBMIT_DELAY", defaultSubmitDelay),
			IdleTTL:     durationWithDefault(lookup, "TOUCHSYNC_WEB_CONTACT_IDLE_TTL", defaultInquiryTTL),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "TOUCHSYNC_WEB_GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "TOUCHSYNC_WEB_GTM_CONTAINER_ID", ""),
			Debug:            boolWithDefault(lookup, "TOUCHSYNC_WEB_ANALYTICS_DEBUG", false),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if strings.TrimSpace(cfg.Paths.Templates) == "" {
		missing = append(missing, "Paths.Templates")
	}
	if len(cfg.I18n.Supported) == 0 || !contains(cfg.I18n.Supported, cfg.I18n.Fallback) {
		missing = append(missing, "I18n.Fallback")
	}
	if cfg.Site.IsProduction() && strings.TrimSpace(cfg.Session.SigningKey) == "" {
		missing = append(missing, "Session.SigningKey")
	}
	if cfg.Contact.SubmitDelay < 0 {
		missing = append(missing, "Contact.SubmitDelay")
	}
	if cfg.Contact.IdleTTL <= 0 {
		missing = append(missing, "Contact.IdleTTL")
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

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if _, err := os.Stat(absPath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	values, err := godotenv.Read(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string, fallback []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
