package server

import (
	"net/http"
	"strings"

	"github.com/machapraveen/gilbench/internal/factorial"
)

// SecurityConfig controls the hardening applied to every request: CORS
// policy plus the server-side caps on what a single request may compute.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string

	// MaxNValue caps the factorial operand. Operators may lower it below
	// the uint64 bound; raising it past factorial.MaxN has no effect
	// because argument validation rejects larger operands first.
	MaxNValue uint

	// MaxRepetitions caps the per-request repetition count so one request
	// cannot pin a core for minutes.
	MaxRepetitions uint64

	// MaxWorkers caps the concurrency a request may demand.
	MaxWorkers int
}

// DefaultSecurityConfig returns the hardening defaults: CORS open to any
// origin, read-only methods, and computation caps sized for a demo host.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxNValue:      factorial.MaxN,
		MaxRepetitions: 100_000_000,
		MaxWorkers:     16,
	}
}

// SecurityMiddleware sets the security headers on every response, applies
// the CORS policy, and answers preflight requests without invoking next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)

		if config.EnableCORS {
			applyCORSHeaders(w, r, config)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// setSecurityHeaders applies the standard hardening headers. The CSP is
// maximally strict: the server returns only JSON and metrics text.
func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// applyCORSHeaders emits the CORS headers when the request origin is
// allowed. The wildcard matches any origin, including requests that carry
// none; a specific allow-list requires an exact Origin match.
func applyCORSHeaders(w http.ResponseWriter, r *http.Request, config SecurityConfig) {
	origin := r.Header.Get("Origin")

	allowed := ""
	for _, candidate := range config.AllowedOrigins {
		if candidate == "*" {
			allowed = "*"
			break
		}
		if origin != "" && candidate == origin {
			allowed = origin
			break
		}
	}
	if allowed == "" {
		return
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", allowed)
	h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
}
