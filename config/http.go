package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":5000"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:5000"`

	// CORSOrigins lists origins allowed to make credentialed requests.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	origins := make([]string, 0, len(h.CORSOrigins))
	for _, o := range h.CORSOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	h.CORSOrigins = origins
}
