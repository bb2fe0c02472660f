package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path (a trailing "/" matches by prefix)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // Buckets unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

const envPrefix = config.EnvPrefix + "RATE_LIMIT_"

// LoadConfig loads rate limiting configuration from RESUME_MATCHER_RATE_LIMIT_* variables.
func LoadConfig() *Config {
	if !config.EnvBool(envPrefix+"ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    config.EnvInt(envPrefix+"DEFAULT_LIMIT", 300),
		DefaultWindow:   config.EnvDuration(envPrefix+"DEFAULT_WINDOW", time.Minute),
		CleanupInterval: config.EnvDuration(envPrefix+"CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         config.EnvDuration(envPrefix+"IDLE_TTL", time.Hour),
		Whitelist:       parseIPList(config.EnvString(envPrefix+"WHITELIST", "")),
		Blacklist:       parseIPList(config.EnvString(envPrefix+"BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	analyze := config.EnvInt(envPrefix+"ANALYZE_LIMIT", 30)
	search := config.EnvInt(envPrefix+"SEARCH_LIMIT", 60)

	return []EndpointConfig{
		// Resume analysis uploads a file and runs the AI matcher upstream
		{Path: "/analyze", Method: http.MethodPost, Limit: analyze, Window: time.Hour, Burst: 3},
		{Path: "/api/matches", Method: http.MethodPost, Limit: analyze, Window: time.Hour, Burst: 3},

		// Searches are cheaper but still proxy to the external service
		{Path: "/search", Method: http.MethodPost, Limit: search, Window: time.Minute, Burst: 10},
		{Path: "/api/jobs", Method: http.MethodGet, Limit: search, Window: time.Minute, Burst: 10},

		// Page views, theme and notice posts use the default limit; health is unlimited
		{Path: "/health", Method: http.MethodGet, Limit: 0},
	}
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
