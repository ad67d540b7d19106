package store

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	stmts   []string
}

// Append only. Never edit an applied migration.
var migrations = []migration{
	{
		version: 1,
		name:    "llm_request_events",
		stmts: []string{
			`CREATE TABLE llm_request_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp DATETIME NOT NULL,
				provider TEXT NOT NULL,
				model TEXT NOT NULL,
				purpose TEXT NOT NULL,
				input_tokens INTEGER NOT NULL DEFAULT 0,
				output_tokens INTEGER NOT NULL DEFAULT 0,
				latency_ms INTEGER NOT NULL DEFAULT 0,
				success INTEGER NOT NULL,
				error_message TEXT NOT NULL DEFAULT '',
				request_body TEXT NOT NULL DEFAULT '',
				response_body TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX idx_llm_request_events_timestamp ON llm_request_events(timestamp DESC)`,
		},
	},
	{
		version: 2,
		name:    "statement_events",
		stmts: []string{
			`CREATE TABLE statement_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				statement_id TEXT NOT NULL UNIQUE,
				timestamp DATETIME NOT NULL,
				chapter TEXT NOT NULL,
				kind TEXT NOT NULL,
				difficulty TEXT NOT NULL DEFAULT '',
				style TEXT NOT NULL,
				source TEXT NOT NULL,
				cache_key TEXT NOT NULL,
				text TEXT NOT NULL,
				unresolved INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE INDEX idx_statement_events_chapter_kind ON statement_events(chapter, kind, id DESC)`,
		},
	},
}

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range m.stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
		return err
	}
	return tx.Commit()
}
