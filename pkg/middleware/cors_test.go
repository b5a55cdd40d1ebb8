package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aamirkhan2478/elite-market-backend/pkg/middleware"
)

func corsRequest(t *testing.T, opts middleware.CORSOptions, origin string) *httptest.ResponseRecorder {
	t.Helper()

	handler := middleware.CORS(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product/show-products", nil)
	req.Header.Set("Origin", origin)
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	opts := middleware.OptionsForOrigins([]string{"https://shop.example.com"})
	rec := corsRequest(t, opts, "https://shop.example.com")

	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	opts := middleware.OptionsForOrigins([]string{"https://shop.example.com"})
	rec := corsRequest(t, opts, "https://evil.example.com")

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSEmptyListFallsBackToWildcard(t *testing.T) {
	opts := middleware.OptionsForOrigins(nil)
	rec := corsRequest(t, opts, "https://anywhere.example.com")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Vary"))
}
