package analyses

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cvmatch-backend/internal/llm"
)

// Expected AI output:
// {
//   "fit_score": "number (0-100)",
//   "summary": "string",
//   "suggestions": ["string"],
//   "alternative_summary": "string"
// }

// Result is the fit assessment relayed back to the caller.
type Result struct {
	FitScore           float64  `json:"fit_score"`
	Summary            string   `json:"summary"`
	Suggestions        []string `json:"suggestions"`
	AlternativeSummary string   `json:"alternative_summary"`
}

var requiredKeys = []string{"fit_score", "summary", "suggestions", "alternative_summary"}

// ParseResult strictly validates raw AI output against the expected schema.
// Missing keys, wrong types, out-of-range scores, and empty suggestion lists
// all reject as malformed. Scores are never clamped.
func ParseResult(raw json.RawMessage) (Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Result{}, fmt.Errorf("%w: unmarshal: %v", llm.ErrMalformed, err)
	}
	for _, key := range requiredKeys {
		value, ok := fields[key]
		if !ok {
			return Result{}, fmt.Errorf("%w: missing key %q", llm.ErrMalformed, key)
		}
		// json null would unmarshal as a zero value and slip past validation.
		if string(bytes.TrimSpace(value)) == "null" {
			return Result{}, fmt.Errorf("%w: key %q is null", llm.ErrMalformed, key)
		}
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", llm.ErrMalformed, err)
	}
	if err := result.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", llm.ErrMalformed, err)
	}
	return result, nil
}

// Validate checks schema constraints on a parsed result.
func (r *Result) Validate() error {
	if r == nil {
		return errors.New("result is nil")
	}
	if r.FitScore < 0 || r.FitScore > 100 {
		return errors.New("fit_score must be between 0 and 100")
	}
	if strings.TrimSpace(r.Summary) == "" {
		return errors.New("summary is required")
	}
	if len(r.Suggestions) == 0 {
		return errors.New("suggestions must not be empty")
	}
	for i, s := range r.Suggestions {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("suggestions[%d] must not be empty", i)
		}
	}
	if strings.TrimSpace(r.AlternativeSummary) == "" {
		return errors.New("alternative_summary is required")
	}
	return nil
}
