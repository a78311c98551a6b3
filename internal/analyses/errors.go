package analyses

import (
	"errors"
	"net/http"
	"strings"

	"cvmatch-backend/internal/documents"
	"cvmatch-backend/internal/extract"
	"cvmatch-backend/internal/llm"
)

const (
	ErrorCodeInvalidInput        = "invalid_input"
	ErrorCodeUnsupportedFormat   = "unsupported_format"
	ErrorCodeExtractionFailed    = "extraction_failed"
	ErrorCodeUpstreamUnavailable = "upstream_unavailable"
	ErrorCodeUpstreamError       = "upstream_error"
	ErrorCodeMalformedResponse   = "malformed_response"
	ErrorCodeInternal            = "internal"
)

// classifyFailure maps a pipeline error to HTTP status, error code, and a
// client-safe message.
func classifyFailure(err error) (int, string, string) {
	switch {
	case errors.Is(err, documents.ErrInvalidInput):
		return http.StatusBadRequest, ErrorCodeInvalidInput, sanitizeError(err)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity, ErrorCodeUnsupportedFormat, "Unsupported file type. Please upload a PDF or DOCX."
	case errors.Is(err, extract.ErrExtraction):
		return http.StatusUnprocessableEntity, ErrorCodeExtractionFailed, "Failed to extract text from the uploaded file."
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorCodeUpstreamUnavailable, "AI analysis is temporarily unavailable. Please try again."
	case errors.Is(err, llm.ErrMalformed):
		return http.StatusBadGateway, ErrorCodeMalformedResponse, "AI analysis returned an unusable response."
	case errors.Is(err, llm.ErrUpstream):
		return http.StatusBadGateway, ErrorCodeUpstreamError, "AI analysis failed due to an upstream error."
	default:
		return http.StatusInternalServerError, ErrorCodeInternal, "Unexpected server error"
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
