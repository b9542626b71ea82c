// ABOUTME: Tests for the API key middleware
// ABOUTME: Covers pass-through, accept, reject, and custom header cases

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newProtectedHandler(apiKey, header string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(apiKey, header)(next)
}

func TestMiddleware_NoKeyConfigured(t *testing.T) {
	handler := newProtectedHandler("", "X-API-Key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_ValidKey(t *testing.T) {
	handler := newProtectedHandler("secret", "X-API-Key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_InvalidKey(t *testing.T) {
	handler := newProtectedHandler("secret", "X-API-Key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or missing API key"}`, rec.Body.String())
}

func TestMiddleware_MissingKey(t *testing.T) {
	handler := newProtectedHandler("secret", "X-API-Key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_CustomHeader(t *testing.T) {
	handler := newProtectedHandler("secret", "X-Gateway-Key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Gateway-Key", "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
