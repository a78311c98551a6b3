package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"cvmatch-backend/internal/llm"
	"cvmatch-backend/internal/shared/telemetry"
)

const (
	defaultAPIURL = "https://api.deepseek.com/v1/chat/completions"
	defaultModel  = "deepseek-chat"
)

// Client implements llm.Client using DeepSeek Chat Completions.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a new DeepSeek client. The request timeout defaults to
// 60 seconds and can be tuned via DEEPSEEK_TIMEOUT_SECONDS; the endpoint can
// be overridden via DEEPSEEK_API_URL.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	apiURL := defaultAPIURL
	if raw := strings.TrimSpace(os.Getenv("DEEPSEEK_API_URL")); raw != "" {
		apiURL = raw
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("DEEPSEEK_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// AnalyzeCV sends one chat-completions request and returns the raw JSON object
// produced by the model.
func (c *Client) AnalyzeCV(ctx context.Context, input llm.AnalyzeInput) (json.RawMessage, error) {
	temp := float32(0.1)
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: llm.SystemPrompt},
			{Role: "user", Content: llm.BuildPrompt(input)},
		},
		Temperature:    &temp,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("%w: deepseek request timeout: %v", llm.ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", llm.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %w: deepseek http status %d: %s", llm.ErrUpstream, llm.ErrTransient, resp.StatusCode, truncateBody(body))
		}
		return nil, fmt.Errorf("%w: deepseek http status %d: %s", llm.ErrUpstream, resp.StatusCode, truncateBody(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: deepseek response parse: %v", llm.ErrMalformed, err)
	}
	if parsed.Error != nil {
		if parsed.Error.Type == "server_error" {
			return nil, fmt.Errorf("%w: %w: deepseek error: %s (%s)", llm.ErrUpstream, llm.ErrTransient, parsed.Error.Message, parsed.Error.Type)
		}
		return nil, fmt.Errorf("%w: deepseek error: %s (%s)", llm.ErrUpstream, parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: deepseek response missing choices", llm.ErrMalformed)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: deepseek response empty content", llm.ErrMalformed)
	}
	logUsage(c.model, parsed.Usage)

	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: deepseek content is not valid JSON", llm.ErrMalformed)
	}
	return json.RawMessage(content), nil
}

func logUsage(model string, usage *chatUsage) {
	fields := map[string]any{"model": model}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("deepseek.usage", fields)
}

func truncateBody(body []byte) string {
	const maxLen = 300
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

var _ llm.Client = (*Client)(nil)
