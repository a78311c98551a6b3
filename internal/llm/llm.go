package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Client abstracts AI providers for CV fit analysis.
type Client interface {
	AnalyzeCV(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// AnalyzeInput captures the inputs needed for a CV analysis.
type AnalyzeInput struct {
	CVText         string
	JobDescription string
}

// Providers wrap every failure in exactly one of these sentinels so callers
// can map an error to a response without knowing the provider.
var (
	// ErrUnavailable reports that the provider could not be reached before the
	// call's deadline.
	ErrUnavailable = errors.New("ai upstream unavailable")
	// ErrUpstream reports that the provider answered with a failure.
	ErrUpstream = errors.New("ai upstream error")
	// ErrMalformed reports a provider reply that does not carry usable JSON.
	ErrMalformed = errors.New("ai response malformed")
)

// ErrTransient marks an upstream failure as safe to retry. Providers wrap it
// alongside ErrUpstream when the provider reported a server-side failure;
// ErrUnavailable failures are treated as transient without the mark.
var ErrTransient = errors.New("transient upstream failure")

// Unconfigured stands in when no provider credentials are present, so dev
// servers still boot without keys.
type Unconfigured struct{}

// AnalyzeCV always fails as unavailable.
func (Unconfigured) AnalyzeCV(ctx context.Context, input AnalyzeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, fmt.Errorf("%w: no llm provider configured", ErrUnavailable)
}
