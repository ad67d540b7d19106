package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type statementRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *statementRepo) AppendStatement(ctx context.Context, d StatementEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO statement_events (
			statement_id, timestamp, chapter, kind, difficulty, style, source, cache_key, text, unresolved
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.StatementID, r.now().UTC(), d.Chapter, d.Kind, d.Difficulty, d.Style, d.Source,
		d.CacheKey, d.Text, d.Unresolved,
	)
	if err != nil {
		return fmt.Errorf("save statement event: %w", err)
	}
	return nil
}

func (r *statementRepo) RecentStyles(ctx context.Context, chapter, kind string, n int) ([]string, error) {
	events, err := r.RecentStatements(ctx, chapter, kind, n)
	if err != nil {
		return nil, err
	}
	styles := make([]string, len(events))
	for i, e := range events {
		styles[i] = e.Style
	}
	return styles, nil
}

func (r *statementRepo) RecentStatements(ctx context.Context, chapter, kind string, n int) ([]StatementEvent, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, statement_id, chapter, kind, difficulty, style, source, cache_key, text, unresolved
		FROM statement_events
		WHERE chapter = ? AND kind = ?
		ORDER BY id DESC
		LIMIT ?`, chapter, kind, n)
	if err != nil {
		return nil, fmt.Errorf("query statements: %w", err)
	}
	defer rows.Close()

	var out []StatementEvent
	for rows.Next() {
		var e StatementEvent
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.StatementID, &e.Chapter, &e.Kind, &e.Difficulty,
			&e.Style, &e.Source, &e.CacheKey, &e.Text, &e.Unresolved,
		); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
