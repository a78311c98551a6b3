package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cvmatch-backend/internal/analyses"
	"cvmatch-backend/internal/services/health"
	"cvmatch-backend/internal/shared/config"
)

func testRouterDeps() RouterDeps {
	return RouterDeps{
		Config: config.Config{
			Port:            "8080",
			CORSAllowOrigin: []string{"*"},
			LLMProvider:     "deepseek",
			Env:             "dev",
		},
		AnalysisHandler: analyses.NewHandler(&analyses.Service{}),
		HealthService:   health.NewService(),
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(testRouterDeps())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("status = %q, want healthy", body["status"])
	}
	if body["message"] != "CV Analyzer API is running" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewRouter(testRouterDeps())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q, want text/plain", ct)
	}
	if !strings.Contains(resp.Body.String(), "cv_analysis_requested_total") {
		t.Fatalf("metrics output missing counters:\n%s", resp.Body.String())
	}
}

func TestAnalyzeRouteWiredWithRequestID(t *testing.T) {
	router := NewRouter(testRouterDeps())

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty form, got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id response header")
	}
}

func TestAddr(t *testing.T) {
	cases := []struct {
		port string
		want string
	}{
		{port: "", want: ":8080"},
		{port: "9090", want: ":9090"},
		{port: ":7070", want: ":7070"},
	}
	for _, tc := range cases {
		if got := Addr(tc.port); got != tc.want {
			t.Fatalf("Addr(%q) = %q, want %q", tc.port, got, tc.want)
		}
	}
}
