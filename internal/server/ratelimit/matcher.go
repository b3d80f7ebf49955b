package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint
// configuration. Returns nil when no configuration applies. Paths ending in
// "/" act as prefixes, so "/api/scans/" matches "/api/scans/{id}".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check endpoint is never limited
	if path == "/api/health" && method == "GET" {
		return &EndpointConfig{}
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Then prefix match
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
