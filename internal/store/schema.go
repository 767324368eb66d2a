package store

const schema = `
-- Exam documents are stored as JSON so the normalizer sees persisted
-- records exactly as the producer wrote them, whatever the vintage.
CREATE TABLE IF NOT EXISTS exams (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    doc TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);

-- One row per logical error-bank entry. Resolved entries are retained.
CREATE TABLE IF NOT EXISTS review_entries (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL,
    easiness REAL NOT NULL,
    repetitions INTEGER NOT NULL,
    interval INTEGER NOT NULL,
    status TEXT NOT NULL,
    times_failed INTEGER NOT NULL,
    last_reviewed_at DATETIME,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_entries_question
    ON review_entries(question_id);

-- Append-only audit trail of applied review outcomes.
CREATE TABLE IF NOT EXISTS review_events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    correct INTEGER NOT NULL,
    grade INTEGER NOT NULL,
    easiness_after REAL NOT NULL,
    interval_after INTEGER NOT NULL,
    status_after TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

-- Append-only log of grading service calls.
CREATE TABLE IF NOT EXISTS grading_events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id TEXT NOT NULL,
    provider TEXT NOT NULL,
    model TEXT NOT NULL,
    input_tokens INTEGER NOT NULL,
    output_tokens INTEGER NOT NULL,
    latency_ms INTEGER NOT NULL,
    success INTEGER NOT NULL,
    error_message TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);
`
