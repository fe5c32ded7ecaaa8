package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/agbru/bigcalc/internal/config"
)

// SecurityConfig holds the security headers, CORS and input limits.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins lists the allowed CORS origins; "*" allows all.
	AllowedOrigins []string
	// AllowedMethods lists the methods announced to CORS clients.
	AllowedMethods []string
	// MaxDigits is the maximum number of digits per operand.
	MaxDigits int
}

// DefaultSecurityConfig returns the default security configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxDigits:      config.DefaultMaxDigits,
	}
}

// SecurityMiddleware sets defensive response headers and answers CORS
// preflight requests with 204.
func SecurityMiddleware(config SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			if config.EnableCORS {
				origin := r.Header.Get("Origin")
				allowed := ""
				if slices.Contains(config.AllowedOrigins, "*") {
					allowed = "*"
				} else if origin != "" && slices.Contains(config.AllowedOrigins, origin) {
					allowed = origin
					h.Add("Vary", "Origin")
				}

				if allowed != "" {
					h.Set("Access-Control-Allow-Origin", allowed)
					h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
					h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, "+RequestIDHeader)
					h.Set("Access-Control-Expose-Headers", RequestIDHeader)
					h.Set("Access-Control-Max-Age", "86400")
				}

				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
