package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cvmatch-backend/internal/documents"
	"cvmatch-backend/internal/extract"
	"cvmatch-backend/internal/llm"
	"cvmatch-backend/internal/shared/metrics"
	"cvmatch-backend/internal/shared/telemetry"
	"cvmatch-backend/internal/shared/util"
)

// Service runs the CV analysis flow: extract text, call the AI provider,
// validate the result. Everything happens within the caller's request;
// nothing is kept once Analyze returns.
type Service struct {
	LLM      llm.Client
	Provider string
	Model    string
}

// Analyze processes one uploaded CV against a job description.
func (s *Service) Analyze(ctx context.Context, doc documents.Document, jobDescription string) (Result, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Result{}, fmt.Errorf("%w: job_description is required", documents.ErrInvalidInput)
	}
	if s.LLM == nil {
		return Result{}, errors.New("missing llm client")
	}

	metrics.IncAnalysisRequested()
	startedAt := time.Now().UTC()
	requestID := requestIDFromContext(ctx)

	text, err := extract.TextFromBytes(ctx, doc.Data, doc.Kind)
	if err != nil {
		s.fail(ctx, doc, startedAt, err)
		return Result{}, err
	}

	telemetry.Info("analysis.extracted", map[string]any{
		"request_id": requestID,
		"file_name":  doc.FileName,
		"kind":       string(doc.Kind),
		"size_bytes": doc.SizeBytes,
		"text_chars": utf8.RuneCountInString(text),
		"digest":     util.ContentDigest(doc.Data),
	})

	client := newRetryingLLM(s.LLM, requestID)
	raw, err := client.AnalyzeCV(ctx, llm.AnalyzeInput{
		CVText:         text,
		JobDescription: jobDescription,
	})
	if err != nil {
		s.fail(ctx, doc, startedAt, err)
		return Result{}, err
	}

	result, err := ParseResult(raw)
	if err != nil {
		s.fail(ctx, doc, startedAt, err)
		return Result{}, err
	}

	completedAt := time.Now().UTC()
	metrics.IncAnalysisSucceeded()
	metrics.ObserveAnalysisDurationMs(durationMs(startedAt, completedAt))
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":  requestID,
		"provider":    s.Provider,
		"model":       s.Model,
		"fit_score":   result.FitScore,
		"duration_ms": durationMs(startedAt, completedAt),
	})
	return result, nil
}

func (s *Service) fail(ctx context.Context, doc documents.Document, startedAt time.Time, err error) {
	completedAt := time.Now().UTC()
	metrics.IncAnalysisFailed()
	metrics.ObserveAnalysisDurationMs(durationMs(startedAt, completedAt))
	telemetry.Error("analysis.failed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"file_name":   doc.FileName,
		"kind":        string(doc.Kind),
		"error":       sanitizeError(err),
		"duration_ms": durationMs(startedAt, completedAt),
	})
}

func durationMs(startedAt, completedAt time.Time) float64 {
	return float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0
}
