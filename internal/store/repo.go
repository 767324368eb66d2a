package store

import (
	"context"
	"time"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

// ExamRepo persists exam documents in their raw JSON shape.
type ExamRepo interface {
	// LoadRaw returns every stored exam document, decoded to maps, in
	// insertion order. Vintage is whatever the producer wrote.
	LoadRaw(ctx context.Context) ([]map[string]any, error)

	// SaveAll replaces the whole collection, preserving the given order.
	SaveAll(ctx context.Context, docs []map[string]any) error

	// SaveDoc upserts a single document by its id field.
	SaveDoc(ctx context.Context, doc map[string]any) error
}

// ReviewRepo persists review-state entries.
type ReviewRepo interface {
	// LoadEntries returns every entry, resolved ones included, in
	// creation order.
	LoadEntries(ctx context.Context) ([]spacedrep.Entry, error)

	// SaveEntry upserts one entry.
	SaveEntry(ctx context.Context, e spacedrep.Entry) error
}

// ReviewEventData captures one applied review outcome for the audit trail.
type ReviewEventData struct {
	EntryID       string
	QuestionID    string
	Correct       bool
	Grade         int
	EasinessAfter float64
	IntervalAfter int
	StatusAfter   string
	At            time.Time
}

// GradingEventData captures one grading service call.
type GradingEventData struct {
	QuestionID   string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to the audit logs.
type EventRepo interface {
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error
	AppendGradingEvent(ctx context.Context, data GradingEventData) error
}
