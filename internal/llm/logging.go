package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/store"
)

// loggingProvider appends a grading event for every call. Logging
// failures are reported to stderr but never fail the request.
type loggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithLogging wraps a Provider with audit-event logging.
func WithLogging(p Provider, providerName string, events store.EventRepo) Provider {
	return &loggingProvider{inner: p, provider: providerName, events: events}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.GradingEventData{
		QuestionID: req.QuestionID,
		Provider:   l.provider,
		Model:      l.inner.ModelID(),
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.InputTokens
		data.OutputTokens = resp.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	if logErr := l.events.AppendGradingEvent(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log grading event: %v\n", logErr)
	}
	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
