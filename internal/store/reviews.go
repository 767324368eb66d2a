package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

type reviewRepo struct {
	db *sql.DB
}

func (r *reviewRepo) LoadEntries(ctx context.Context) ([]spacedrep.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question_id, easiness, repetitions, interval, status,
		       times_failed, last_reviewed_at
		FROM review_entries ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query review entries: %w", err)
	}
	defer rows.Close()

	var entries []spacedrep.Entry
	for rows.Next() {
		var e spacedrep.Entry
		var status string
		var last sql.NullTime
		err := rows.Scan(&e.ID, &e.QuestionID,
			&e.State.Easiness, &e.State.Repetitions, &e.State.Interval,
			&status, &e.State.TimesFailed, &last)
		if err != nil {
			return nil, fmt.Errorf("scan review entry: %w", err)
		}
		e.State.Status = spacedrep.Status(status)
		if last.Valid {
			t := last.Time.UTC()
			e.State.LastReviewedAt = &t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review entries: %w", err)
	}
	return entries, nil
}

func (r *reviewRepo) SaveEntry(ctx context.Context, e spacedrep.Entry) error {
	var last any
	if e.State.LastReviewedAt != nil {
		last = e.State.LastReviewedAt.UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_entries
			(id, question_id, easiness, repetitions, interval, status,
			 times_failed, last_reviewed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			easiness = excluded.easiness,
			repetitions = excluded.repetitions,
			interval = excluded.interval,
			status = excluded.status,
			times_failed = excluded.times_failed,
			last_reviewed_at = excluded.last_reviewed_at
	`, e.ID, e.QuestionID, e.State.Easiness, e.State.Repetitions,
		e.State.Interval, string(e.State.Status), e.State.TimesFailed,
		last, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save review entry %s: %w", e.ID, err)
	}
	return nil
}
