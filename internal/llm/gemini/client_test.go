package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"cvmatch-backend/internal/llm"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "  ", "gemini-2.5-pro"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name          string
		err           error
		wantIs        error
		wantTransient bool
	}{
		{name: "deadline", err: context.DeadlineExceeded, wantIs: llm.ErrUnavailable},
		{name: "server error", err: genai.APIError{Code: 503, Status: "UNAVAILABLE", Message: "model overloaded"}, wantIs: llm.ErrUpstream, wantTransient: true},
		{name: "quota", err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exhausted"}, wantIs: llm.ErrUpstream},
		{name: "bad request", err: genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, wantIs: llm.ErrUpstream},
		{name: "transport", err: errors.New("dial tcp 127.0.0.1:443: connection refused"), wantIs: llm.ErrUnavailable},
		{name: "unclassified", err: errors.New("unexpected reply shape"), wantIs: llm.ErrUpstream},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyError(tc.err)
			if !errors.Is(got, tc.wantIs) {
				t.Fatalf("classifyError(%v) = %v, want %v", tc.err, got, tc.wantIs)
			}
			if errors.Is(got, llm.ErrTransient) != tc.wantTransient {
				t.Fatalf("classifyError(%v) transient = %v, want %v", tc.err, !tc.wantTransient, tc.wantTransient)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare json", raw: `{"fit_score": 80}`, want: `{"fit_score": 80}`},
		{name: "json fence", raw: "```json\n{\"fit_score\": 80}\n```", want: `{"fit_score": 80}`},
		{name: "plain fence", raw: "```\n{\"fit_score\": 80}\n```", want: `{"fit_score": 80}`},
		{name: "surrounding whitespace", raw: "  \n{\"a\":1}\n ", want: `{"a":1}`},
		{name: "empty", raw: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.raw); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
