package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/learnpath/learnpath/internal/mastery"
)

// ChatEventData captures the data for a single chatbot LLM request.
type ChatEventData struct {
	Provider     string
	Model        string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and replay access to activity events.
type EventRepo interface {
	// AppendActivity stores a batch of activity events for a user in one
	// transaction: all rows land or none do.
	AppendActivity(ctx context.Context, userID string, events []mastery.Event) error

	// ActivityByUser returns a user's full event history ordered by time.
	ActivityByUser(ctx context.Context, userID string) ([]mastery.Event, error)

	// AppendChat records a chatbot LLM request event.
	AppendChat(ctx context.Context, data ChatEventData) error
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendActivity(ctx context.Context, userID string, events []mastery.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO activity_events (id, user_id, topic, kind, correct, duration_ms, at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range events {
		correct := 0
		if e.Correct {
			correct = 1
		}
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(), userID, e.Topic, string(e.Kind),
			correct, e.Duration.Milliseconds(), e.At.UTC().Format(time.RFC3339), now,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	return tx.Commit()
}

func (r *eventRepo) ActivityByUser(ctx context.Context, userID string) ([]mastery.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic, kind, correct, duration_ms, at
		 FROM activity_events WHERE user_id = ? ORDER BY at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []mastery.Event
	for rows.Next() {
		var (
			e          mastery.Event
			kind       string
			correct    int
			durationMs int64
			at         string
		)
		if err := rows.Scan(&e.Topic, &kind, &correct, &durationMs, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = mastery.EventKind(kind)
		e.Correct = correct != 0
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.At, _ = time.Parse(time.RFC3339, at)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) AppendChat(ctx context.Context, data ChatEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_events (provider, model, latency_ms, success, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.LatencyMs, success, data.ErrorMessage,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert chat event: %w", err)
	}
	return nil
}
