package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func requestIDRouter(t *testing.T) (*gin.Engine, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		seen = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestRequestIDGenerated(t *testing.T) {
	router, seen := requestIDRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	header := resp.Header().Get("X-Request-Id")
	if header == "" {
		t.Fatalf("expected generated X-Request-Id header")
	}
	if *seen != header {
		t.Fatalf("context id %q does not match header %q", *seen, header)
	}
}

func TestRequestIDEchoesClientValue(t *testing.T) {
	router, seen := requestIDRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Request-Id"); got != "client-supplied-id" {
		t.Fatalf("expected client id to be echoed, got %q", got)
	}
	if *seen != "client-supplied-id" {
		t.Fatalf("context id = %q, want client-supplied-id", *seen)
	}
}

func TestRequestIDFromContextNil(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %q", got)
	}
}
