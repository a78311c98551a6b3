package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"cvmatch-backend/internal/llm"
)

const defaultModel = "gemini-2.5-pro"

// Client implements llm.Client using the Google GenAI SDK.
type Client struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewClient creates a client configured for the Gemini API backend. The
// request timeout defaults to 60 seconds and can be tuned via
// GEMINI_TIMEOUT_SECONDS.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	return &Client{client: client, modelName: model, timeout: timeout}, nil
}

// AnalyzeCV sends one generate-content request and returns the raw JSON object
// produced by the model.
func (c *Client) AnalyzeCV(ctx context.Context, input llm.AnalyzeInput) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := llm.SystemPrompt + "\n\n" + llm.BuildPrompt(input)
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0.1)),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return nil, classifyError(err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	content := extractJSON(builder.String())
	if content == "" {
		return nil, fmt.Errorf("%w: gemini response empty content", llm.ErrMalformed)
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: gemini content is not valid JSON", llm.ErrMalformed)
	}
	return json.RawMessage(content), nil
}

// classifyError maps a GenAI SDK failure onto the shared sentinels.
// Server-side HTTP failures also carry llm.ErrTransient.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: gemini request timeout: %v", llm.ErrUnavailable, err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code >= 500 {
			return fmt.Errorf("%w: %w: gemini http status %d: %s", llm.ErrUpstream, llm.ErrTransient, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%w: gemini http status %d: %s", llm.ErrUpstream, apiErr.Code, apiErr.Message)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") || strings.Contains(msg, "timeout") {
		return fmt.Errorf("%w: gemini transport: %v", llm.ErrUnavailable, err)
	}
	return fmt.Errorf("%w: gemini generate content: %v", llm.ErrUpstream, err)
}

// extractJSON strips markdown code fences the model sometimes wraps around
// its JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

var _ llm.Client = (*Client)(nil)
