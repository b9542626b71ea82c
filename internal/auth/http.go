// ABOUTME: HTTP middleware for static API key authentication
// ABOUTME: Compares a configured header value in constant time

package auth

import (
	"crypto/subtle"
	"net/http"
)

// Middleware creates an HTTP middleware that verifies a static API key
// carried in the given header. An empty configured key disables the check
// and all requests pass through.
func Middleware(apiKey, headerName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(headerName)
			if !equalKeys(provided, apiKey) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Invalid or missing API key"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// equalKeys compares two keys in constant time.
func equalKeys(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
