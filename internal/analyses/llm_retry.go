package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cvmatch-backend/internal/llm"
	"cvmatch-backend/internal/shared/metrics"
	"cvmatch-backend/internal/shared/telemetry"
)

const llmRetryBaseDelay = 300 * time.Millisecond

type retryingLLM struct {
	base      llm.Client
	requestID string
}

func newRetryingLLM(base llm.Client, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingLLM{base: base, requestID: requestID}
}

// AnalyzeCV forwards to the base client and retries exactly once when the
// failure is transient. Malformed output is never retried.
func (r retryingLLM) AnalyzeCV(ctx context.Context, input llm.AnalyzeInput) (json.RawMessage, error) {
	resp, err := r.base.AnalyzeCV(ctx, input)
	if err == nil || !shouldRetryUpstream(err) {
		return resp, err
	}

	metrics.IncUpstreamRetry()
	telemetry.Info("llm.retry", map[string]any{
		"request_id": r.requestID,
		"attempt":    1,
		"error":      sanitizeError(err),
	})
	select {
	case <-time.After(llmRetryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return r.base.AnalyzeCV(ctx, input)
}

// shouldRetryUpstream trusts the provider's own classification: clients mark
// retryable failures with llm.ErrTransient when they wrap the error.
func shouldRetryUpstream(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, llm.ErrMalformed) {
		return false
	}
	return errors.Is(err, llm.ErrUnavailable) ||
		errors.Is(err, llm.ErrTransient) ||
		errors.Is(err, context.DeadlineExceeded)
}
