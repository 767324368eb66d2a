package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type examRepo struct {
	db *sql.DB
}

func (r *examRepo) LoadRaw(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM exams ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query exams: %w", err)
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan exam row: %w", err)
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode exam doc: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exams: %w", err)
	}
	return docs, nil
}

func (r *examRepo) SaveAll(ctx context.Context, docs []map[string]any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exams`); err != nil {
		return fmt.Errorf("clear exams: %w", err)
	}
	for i, doc := range docs {
		if err := upsertDoc(ctx, tx, doc, i); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (r *examRepo) SaveDoc(ctx context.Context, doc map[string]any) error {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return fmt.Errorf("exam doc has no id")
	}

	var position int
	err := r.db.QueryRowContext(ctx,
		`SELECT position FROM exams WHERE id = ?`, id).Scan(&position)
	if err == sql.ErrNoRows {
		_ = r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position)+1, 0) FROM exams`).Scan(&position)
	} else if err != nil {
		return fmt.Errorf("find exam %s: %w", id, err)
	}

	return upsertDoc(ctx, r.db, doc, position)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertDoc(ctx context.Context, db execer, doc map[string]any, position int) error {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return fmt.Errorf("exam doc at position %d has no id", position)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode exam %s: %w", id, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO exams (id, position, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position = excluded.position,
			doc = excluded.doc,
			updated_at = excluded.updated_at
	`, id, position, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save exam %s: %w", id, err)
	}
	return nil
}
