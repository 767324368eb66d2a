package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	at := data.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_events
			(entry_id, question_id, correct, grade, easiness_after,
			 interval_after, status_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, data.EntryID, data.QuestionID, boolToInt(data.Correct), data.Grade,
		data.EasinessAfter, data.IntervalAfter, data.StatusAfter, at.UTC())
	if err != nil {
		return fmt.Errorf("append review event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendGradingEvent(ctx context.Context, data GradingEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO grading_events
			(question_id, provider, model, input_tokens, output_tokens,
			 latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, data.QuestionID, data.Provider, data.Model, data.InputTokens,
		data.OutputTokens, data.LatencyMs, boolToInt(data.Success),
		data.ErrorMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append grading event: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
