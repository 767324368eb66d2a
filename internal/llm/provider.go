// Package llm is the transport layer for the grading boundary: one
// Provider interface over the Anthropic, OpenAI and Gemini SDKs, with
// retry and audit-logging decorators. Grading itself lives in
// internal/grading; this package only moves validated JSON.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Provider sends one prompt and returns structured JSON.
type Provider interface {
	// Generate sends a single-turn prompt. When req.Schema is set the
	// provider uses its native structured-output mechanism and the
	// returned Content is JSON validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// User is the user-turn content.
	User string

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0,1]; zero means deterministic.
	Temperature float64

	// QuestionID ties the call to a question for the audit log.
	QuestionID string
}

// Schema names a JSON Schema definition for structured output.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	Content      json.RawMessage
	Model        string
	InputTokens  int
	OutputTokens int
}

// ErrRateLimit indicates a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates content that does not conform to the
// requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
