package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/learnpath/learnpath/internal/mastery"
)

// Snapshot is a point-in-time capture of one user's mastery records.
type Snapshot struct {
	ID        int64
	UserID    string
	Records   []mastery.Record
	CreatedAt time.Time
}

// SnapshotRepo persists mastery snapshots so dashboards start warm without
// replaying the full event log.
type SnapshotRepo interface {
	// Save stores a new snapshot for a user.
	Save(ctx context.Context, userID string, records []mastery.Record) error

	// Latest returns the most recent snapshot for a user, or ErrNotFound.
	Latest(ctx context.Context, userID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots per user.
	Prune(ctx context.Context, userID string, keep int) error
}

type snapshotRepo struct {
	db *sql.DB
}

type snapshotRecord struct {
	Topic    string  `json:"topic"`
	Score    float64 `json:"score"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	BestMs   int64   `json:"best_ms"`
	Revisits int     `json:"revisits"`
	Computed string  `json:"computed_at"`
}

func (r *snapshotRepo) Save(ctx context.Context, userID string, records []mastery.Record) error {
	encoded := make([]snapshotRecord, len(records))
	for i, rec := range records {
		encoded[i] = snapshotRecord{
			Topic:    rec.Topic,
			Score:    rec.Score,
			Attempts: rec.Attempts,
			Correct:  rec.Correct,
			BestMs:   rec.BestSolve.Milliseconds(),
			Revisits: rec.Revisits,
			Computed: rec.ComputedAt.UTC().Format(time.RFC3339),
		}
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO mastery_snapshots (user_id, data, created_at) VALUES (?, ?, ?)`,
		userID, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, data, created_at FROM mastery_snapshots
		 WHERE user_id = ? ORDER BY id DESC LIMIT 1`, userID)

	var (
		snap      Snapshot
		data      string
		createdAt string
	)
	if err := row.Scan(&snap.ID, &data, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot for %q: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}

	var encoded []snapshotRecord
	if err := json.Unmarshal([]byte(data), &encoded); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	snap.UserID = userID
	snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	snap.Records = make([]mastery.Record, len(encoded))
	for i, e := range encoded {
		computedAt, _ := time.Parse(time.RFC3339, e.Computed)
		snap.Records[i] = mastery.Record{
			Topic:      e.Topic,
			Score:      e.Score,
			Attempts:   e.Attempts,
			Correct:    e.Correct,
			BestSolve:  time.Duration(e.BestMs) * time.Millisecond,
			Revisits:   e.Revisits,
			ComputedAt: computedAt,
		}
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, userID string, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM mastery_snapshots
		 WHERE user_id = ? AND id NOT IN (
			SELECT id FROM mastery_snapshots
			WHERE user_id = ? ORDER BY id DESC LIMIT ?
		 )`, userID, userID, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
