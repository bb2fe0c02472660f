// Package config provides configuration loading and validation for the resume matcher.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultUpstreamURL is the external search and matching service.
const DefaultUpstreamURL = "https://resume-project-6faq.onrender.com"

// Config represents the application configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults.
type Config struct {
	// Upstream service
	UpstreamURL    string   `json:"upstream_url,omitempty" validate:"omitempty,http_url"` // Base URL of the search/matching service
	RequestTimeout Duration `json:"request_timeout,omitempty" validate:"gte=0"`           // Per-request timeout for upstream calls (0 = none)

	// Web server
	Port           int      `json:"port,omitempty" validate:"gte=0,lte=65535"`           // Port to listen on
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty" validate:"gte=0"`         // Largest accepted resume upload
	SessionTTL     Duration `json:"session_ttl,omitempty" validate:"gte=0"`              // Idle time before a session is evicted
	DefaultTheme   string   `json:"default_theme,omitempty" validate:"omitempty,oneof=dark light"`
	SecureCookies  bool     `json:"secure_cookies,omitempty"` // Mark cookies Secure (HTTPS deployments)

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		UpstreamURL:    DefaultUpstreamURL,
		RequestTimeout: Duration(2 * time.Minute), // free-tier upstream cold starts are slow
		Port:           8080,
		MaxUploadBytes: 10 << 20,
		SessionTTL:     Duration(time.Hour),
		DefaultTheme:   "dark",
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv returns a copy of c with RESUME_MATCHER_* environment variables applied on top.
func (c Config) ApplyEnv() Config {
	result := c

	result.UpstreamURL = EnvString(EnvPrefix+"UPSTREAM_URL", result.UpstreamURL)
	result.RequestTimeout = Duration(EnvDuration(EnvPrefix+"REQUEST_TIMEOUT", time.Duration(result.RequestTimeout)))
	result.Port = EnvInt(EnvPrefix+"PORT", result.Port)
	result.MaxUploadBytes = int64(EnvInt(EnvPrefix+"MAX_UPLOAD_BYTES", int(result.MaxUploadBytes)))
	result.SessionTTL = Duration(EnvDuration(EnvPrefix+"SESSION_TTL", time.Duration(result.SessionTTL)))
	result.DefaultTheme = EnvString(EnvPrefix+"DEFAULT_THEME", result.DefaultTheme)
	result.SecureCookies = EnvBool(EnvPrefix+"SECURE_COOKIES", result.SecureCookies)
	result.LogLevel = EnvString(EnvPrefix+"LOG_LEVEL", result.LogLevel)
	result.LogFormat = EnvString(EnvPrefix+"LOG_FORMAT", result.LogFormat)

	return result
}

var validate = newValidator()

// newValidator reports fields by their JSON key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UpstreamURL == "" {
		result.UpstreamURL = defaults.UpstreamURL
	}
	if result.DefaultTheme == "" {
		result.DefaultTheme = defaults.DefaultTheme
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.SessionTTL == 0 {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// Load resolves the effective configuration: defaults, then the optional JSON file,
// then environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg = cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
