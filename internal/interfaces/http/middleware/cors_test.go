// internal/interfaces/http/middleware/cors_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backoffice/internal/config"
)

func TestCORSAlwaysAllowsDomainHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A deployment config that forgot the headers the API depends on.
	cfg := &config.Config{}
	cfg.Security.CORSAllowedOrigins = []string{"http://localhost:3000"}
	cfg.Security.CORSAllowedMethods = []string{"GET", "POST"}
	cfg.Security.CORSAllowedHeaders = []string{"Origin", "Content-Type"}

	router := gin.New()
	router.Use(CORS(cfg))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", w.Code)
	}
	allowed := w.Header().Get("Access-Control-Allow-Headers")
	if !strings.Contains(allowed, "X-Actor") || !strings.Contains(allowed, "X-Request-ID") {
		t.Fatalf("expected X-Actor and X-Request-ID to be allowed, got %q", allowed)
	}
	// The configured list is kept, not replaced.
	if !strings.Contains(allowed, "Content-Type") {
		t.Fatalf("expected configured headers to be kept, got %q", allowed)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("expected origin to be allowed, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	// Headers already present are not duplicated.
	headers := withRequiredHeaders([]string{"x-actor", "X-Request-ID"})
	if len(headers) != 2 {
		t.Fatalf("expected no duplicates, got %v", headers)
	}
}
