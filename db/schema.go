package db

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- In-progress form drafts, one row per draft storage key.
-- record is the JSON-serialized BriefRecord; step is the saved sequencer step.
CREATE TABLE IF NOT EXISTS draft (
    key TEXT PRIMARY KEY,
    record TEXT NOT NULL,
    step INTEGER NOT NULL DEFAULT 1,
    updated_at TIMESTAMP NOT NULL
);

-- Audit log of submission attempts and their per-channel outcomes.
-- chat_ok is NULL when the chat channel was not configured/attempted.
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    brief_id TEXT NOT NULL,
    project_name TEXT,
    client_name TEXT,
    email_ok INTEGER NOT NULL,
    chat_ok INTEGER,
    error_detail TEXT,
    pdf_bytes INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_brief_id ON submission(brief_id);
`

// LogSubmission records one submission attempt. chatOK is nil when the chat
// channel was skipped entirely.
func LogSubmission(db *sql.DB, id, briefID, projectName, clientName string, emailOK bool, chatOK *bool, errorDetail string, pdfBytes int) error {
	_, err := db.Exec(`
		INSERT INTO submission (id, brief_id, project_name, client_name, email_ok, chat_ok, error_detail, pdf_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, briefID, projectName, clientName, emailOK, chatOK, errorDetail, pdfBytes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to log submission: %w", err)
	}
	return nil
}
